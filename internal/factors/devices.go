package factors

// DeviceType enumerates the device catalog. The string values double as
// display labels.
type DeviceType string

const (
	DeviceDesktop    DeviceType = "Desktop Computer"
	DeviceLaptop     DeviceType = "Laptop Computer"
	DeviceSmartphone DeviceType = "Smartphone"
	DeviceTablet     DeviceType = "Tablet"
	DeviceMonitor    DeviceType = "External Monitor"
	DeviceHeadphones DeviceType = "Headphones"
	DevicePrinter    DeviceType = "Printer"
	DeviceRouter     DeviceType = "Home Router/Modem"
	DeviceMaxiScreen DeviceType = "Maxi-screen"
	DeviceProjector  DeviceType = "Projector"
)

// deviceFactors maps each device type to its embodied (production)
// emissions in kg CO2e.
var deviceFactors = map[DeviceType]float64{
	DeviceDesktop:    296,
	DeviceLaptop:     170,
	DeviceSmartphone: 38.4,
	DeviceTablet:     87.1,
	DeviceMonitor:    235,
	DeviceHeadphones: 10.22,
	DevicePrinter:    62.3,
	DeviceRouter:     106,
	DeviceMaxiScreen: 1320,
	DeviceProjector:  145,
}

// defaultLifespans holds the average lifespan in years used when the
// respondent does not know their own.
var defaultLifespans = map[DeviceType]float64{
	DeviceDesktop:    6,
	DeviceLaptop:     5,
	DeviceSmartphone: 3,
	DeviceTablet:     4,
	DeviceMonitor:    8,
	DeviceHeadphones: 3,
	DevicePrinter:    7,
	DeviceRouter:     8,
	DeviceMaxiScreen: 8,
	DeviceProjector:  8,
}

// deviceOrder fixes catalog iteration order for pickers and tests.
var deviceOrder = []DeviceType{
	DeviceDesktop,
	DeviceLaptop,
	DeviceSmartphone,
	DeviceTablet,
	DeviceMonitor,
	DeviceHeadphones,
	DevicePrinter,
	DeviceRouter,
	DeviceMaxiScreen,
	DeviceProjector,
}

// DeviceCatalog returns the device types offered to a role, in picker
// order. Maxi-screens and projectors are lecture-hall equipment and are not
// offered to students.
func DeviceCatalog(role Role) []DeviceType {
	if role != RoleStudent {
		out := make([]DeviceType, len(deviceOrder))
		copy(out, deviceOrder)
		return out
	}
	out := make([]DeviceType, 0, len(deviceOrder)-2)
	for _, t := range deviceOrder {
		if t == DeviceMaxiScreen || t == DeviceProjector {
			continue
		}
		out = append(out, t)
	}
	return out
}

// DeviceFactor returns the embodied emissions for a device type.
func DeviceFactor(t DeviceType) (float64, bool) {
	f, ok := deviceFactors[t]
	return f, ok
}

// DefaultLifespan returns the catalog average lifespan in years for a
// device type. Unknown types fall back to 5 years.
func DefaultLifespan(t DeviceType) float64 {
	if y, ok := defaultLifespans[t]; ok {
		return y
	}
	return 5
}

// Valid reports whether t belongs to the device catalog.
func (t DeviceType) Valid() bool {
	_, ok := deviceFactors[t]
	return ok
}

// Disposition is the declared end-of-life behavior for a device. The string
// values are the questionnaire wording.
type Disposition string

const (
	DispositionCollectionCenter Disposition = "I bring it to a certified e-waste collection center"
	DispositionGeneralWaste     Disposition = "I throw it away in general waste"
	DispositionManufacturer     Disposition = "I return it to manufacturer for recycling or reuse"
	DispositionSellDonate       Disposition = "I sell or donate it to someone else"
	DispositionStoreAtHome      Disposition = "I store it at home, unused"
	DispositionUniversityReturn Disposition = "Device provided by the university, I return it after use"
)

// dispositionModifiers maps each disposition to its signed end-of-life
// modifier. Negative values are avoided-emission credit, positive values are
// penalty.
var dispositionModifiers = map[Disposition]float64{
	DispositionCollectionCenter: -0.224,
	DispositionGeneralWaste:     0.611,
	DispositionManufacturer:     -0.3665,
	DispositionSellDonate:       -0.445,
	DispositionStoreAtHome:      0.402,
	DispositionUniversityReturn: -0.089,
}

// dispositionOrder fixes the questionnaire order.
var dispositionOrder = []Disposition{
	DispositionCollectionCenter,
	DispositionGeneralWaste,
	DispositionManufacturer,
	DispositionSellDonate,
	DispositionStoreAtHome,
	DispositionUniversityReturn,
}

// Dispositions returns the end-of-life options offered to a role.
// University-provided equipment return only applies to professors and staff.
func Dispositions(role Role) []Disposition {
	out := make([]Disposition, 0, len(dispositionOrder))
	for _, d := range dispositionOrder {
		if d == DispositionUniversityReturn && role == RoleStudent {
			continue
		}
		out = append(out, d)
	}
	return out
}

// DispositionModifier returns the signed modifier for a disposition.
func DispositionModifier(d Disposition) (float64, bool) {
	m, ok := dispositionModifiers[d]
	return m, ok
}

// Responsible reports whether the disposition routes the device toward
// recycling or reuse rather than waste or hoarding.
func (d Disposition) Responsible() bool {
	m, ok := dispositionModifiers[d]
	return ok && m < 0
}
