// Package factors holds the static emission-factor tables used by the
// footprint engine and the insight generator.
//
// Factors come primarily from Ecoinvent v3.11 and Base Carbone (ADEME,
// v23.7), supplemented with peer-reviewed literature where those databases
// have no entry. All emission values are kg CO2e unless noted otherwise.
package factors

// Role identifies the respondent's position in academia. The string values
// are wire-level: they must match the Role column of the remote stats sheet
// exactly.
type Role string

const (
	RoleStudent   Role = "Student"
	RoleProfessor Role = "Professor"
	RoleStaff     Role = "Staff Member"
)

// Roles returns the selectable roles in display order.
func Roles() []Role {
	return []Role{RoleStudent, RoleProfessor, RoleStaff}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleStaff:
		return true
	}
	return false
}

// WorkingDays is the number of study/work days used to annualize
// per-day habit inputs.
const WorkingDays = 250

// Per-unit factors for the digital-activities category, kg CO2e.
const (
	// EmailPlainFactor is per email without attachment.
	EmailPlainFactor = 0.004

	// EmailAttachFactor is per email with attachment.
	EmailAttachFactor = 0.035

	// CloudStorageFactor is per GB stored, per working day.
	CloudStorageFactor = 0.01

	// WiFiHourFactor is per hour of Wi-Fi connectivity.
	WiFiHourFactor = 0.00584

	// PrintedPageFactor is per printed page.
	PrintedPageFactor = 0.0045

	// IdleOnHourFactor is the hourly draw of a computer left in idle mode.
	IdleOnHourFactor = 0.0104

	// IdleOffHourFactor is the residual hourly draw of a computer that is
	// switched off at the end of the day.
	IdleOffHourFactor = 0.0005204

	// IdleHoursPerDay is the non-working window the idle factors apply to.
	IdleHoursPerDay = 16
)

// IdleChoice is the tri-state answer to the end-of-day computer question.
type IdleChoice int

const (
	IdleUnset IdleChoice = iota

	// IdleTurnOff means the computer is switched off after work.
	IdleTurnOff

	// IdleLeaveOn means the computer stays on in idle mode.
	IdleLeaveOn

	// IdleNoComputer means the respondent has no computer to power down.
	IdleNoComputer
)

// String returns the questionnaire wording for the choice.
func (c IdleChoice) String() string {
	switch c {
	case IdleTurnOff:
		return "I turn it off"
	case IdleLeaveOn:
		return "I leave it on (idle mode)"
	case IdleNoComputer:
		return "I don't have a computer"
	default:
		return "unset"
	}
}

// IdleChoices returns the selectable answers in display order.
func IdleChoices() []IdleChoice {
	return []IdleChoice{IdleTurnOff, IdleLeaveOn, IdleNoComputer}
}

// Activity is one per-role digital activity with its hourly emission factor.
type Activity struct {
	Name   string
	Factor float64 // kg CO2e per hour
}

// Hourly activity factors shared across roles.
const (
	officeSuiteFactor   = 0.00901
	webBrowsingFactor   = 0.0264
	streamingFactor     = 0.112
	readingFactor       = 0.004352
	lectureRecordFactor = 0.0439
)

// Activities returns the activity catalog for a role, in questionnaire
// order. The three roles overlap but are not identical, so callers must not
// assume a shared index space.
func Activities(role Role) []Activity {
	switch role {
	case RoleStudent:
		return []Activity{
			{"MS Office (e.g. Excel, Word, PPT, Outlook)", officeSuiteFactor},
			{"Technical software (e.g. Matlab, Python)", officeSuiteFactor},
			{"Web browsing", webBrowsingFactor},
			{"Watching lecture recordings", lectureRecordFactor},
			{"Online classes streaming or video call", streamingFactor},
			{"Reading study materials on your computer", readingFactor},
		}
	case RoleProfessor:
		return []Activity{
			{"MS Office (e.g. Excel, Word, PPT, Outlook)", officeSuiteFactor},
			{"Web browsing", webBrowsingFactor},
			{"Videocall (e.g. Zoom, Teams)", streamingFactor},
			{"Online classes streaming", streamingFactor},
			{"Reading materials on your computer", readingFactor},
			{"Technical software (e.g. Matlab, Python)", officeSuiteFactor},
		}
	case RoleStaff:
		return []Activity{
			{"MS Office (e.g. Excel, Word, PPT, Outlook)", officeSuiteFactor},
			{"Management software (e.g. SAP)", officeSuiteFactor},
			{"Web browsing", webBrowsingFactor},
			{"Videocall (e.g. Zoom, Teams)", streamingFactor},
			{"Reading materials on your computer", readingFactor},
		}
	}
	return nil
}

// ActivityFactor returns the hourly factor for an activity of the given
// role, or (0, false) if the activity does not belong to the role's catalog.
func ActivityFactor(role Role, name string) (float64, bool) {
	for _, a := range Activities(role) {
		if a.Name == name {
			return a.Factor, true
		}
	}
	return 0, false
}

// AITask is one AI-assisted task with its per-query energy factor.
type AITask struct {
	Name   string
	Factor float64 // kg CO2e per query
}

// AITasks returns the AI task catalog in questionnaire order. Per-query
// factors follow Jegham et al. (2025) LLM inference benchmarks.
func AITasks() []AITask {
	return []AITask{
		{"Summarize texts or articles", 0.000711936},
		{"Translate sentences or texts", 0.000363008},
		{"Explain a concept", 0.000310784},
		{"Generate quizzes or questions", 0.000539136},
		{"Write formal emails or messages", 0.000107776},
		{"Correct grammar or style", 0.000107776},
		{"Analyze long PDF documents", 0.001412608},
		{"Write or test code", 0.002337024},
		{"Generate images", 0.00206},
		{"Brainstorm for thesis or projects", 0.000310784},
		{"Explain code step-by-step", 0.003542528},
		{"Prepare lessons or presentations", 0.000539136},
	}
}

// AITaskFactor returns the per-query factor for a task name.
func AITaskFactor(name string) (float64, bool) {
	for _, t := range AITasks() {
		if t.Name == name {
			return t.Factor, true
		}
	}
	return 0, false
}

// Bucket is a labelled answer range with the midpoint used for computation.
type Bucket struct {
	Label    string
	Midpoint float64
}

// EmailBuckets returns the daily email volume answers. The same buckets are
// used for plain and attachment emails.
func EmailBuckets() []Bucket {
	return []Bucket{
		{"0", 0},
		{"1-10", 5},
		{"11-20", 15},
		{"21-30", 25},
		{"31-40", 35},
		{"41-80", 60},
		{"81-100", 90},
		{">100", 150},
	}
}

// CloudBuckets returns the cloud storage answers in GB.
func CloudBuckets() []Bucket {
	return []Bucket{
		{"<5GB", 2.5},
		{"5-20GB", 12.5},
		{"20-50GB", 35},
		{"50-100GB", 75},
		{"100-200GB", 150},
	}
}

// BucketMidpoint resolves a bucket label against a bucket list. Unknown
// labels (including the empty "not selected" label) resolve to 0.
func BucketMidpoint(buckets []Bucket, label string) float64 {
	for _, b := range buckets {
		if b.Label == label {
			return b.Midpoint
		}
	}
	return 0
}

// AverageByRole is the built-in fallback for the role average comparison,
// used when the remote stats sheet is unreachable or its sample is too
// small to trust.
func AverageByRole(role Role) (float64, bool) {
	switch role {
	case RoleStudent:
		return 297, true
	case RoleProfessor:
		return 323, true
	case RoleStaff:
		return 309, true
	}
	return 0, false
}

// Equivalency divisors: one unit of the named thing per this many kg CO2e.
const (
	// BurgerKg is per beef burger eaten.
	BurgerKg = 4.6

	// LEDBankKgPerHour is per hour of 100 LED bulbs (10W) switched on.
	LEDBankKgPerHour = 0.256

	// CarKgPerKm is per km driven in a gasoline car.
	CarKgPerKm = 0.17

	// NetflixKgPerHour is per hour of video streaming.
	NetflixKgPerHour = 0.055
)
