package insights

import (
	"fmt"

	"github.com/greendilt/footprint/internal/factors"
	"github.com/greendilt/footprint/internal/ledger"
)

// Virtue thresholds.
const (
	longLifeYears         = 5.0
	lowAttachEmailsPerDay = 10
	lowCloudGB            = 20
	lowAIQueriesPerDay    = 20
)

// Virtues runs the fixed checklist of positive-behavior predicates and
// returns one affirming message per satisfied predicate. There is no
// scoring, only presence.
func Virtues(p Profile) []string {
	var out []string

	var usedDevices, longLived []string
	hasResponsibleEOL := false
	for _, rec := range p.Records {
		if rec.Condition == ledger.ConditionUsed {
			usedDevices = append(usedDevices, string(rec.ID.Type))
		}
		if rec.Lifespan > longLifeYears {
			longLived = append(longLived, string(rec.ID.Type))
		}
		if rec.State == ledger.StateConfirmed && rec.Disposition.Responsible() {
			hasResponsibleEOL = true
		}
	}

	if len(usedDevices) > 0 {
		out = append(out, fmt.Sprintf(
			"You chose a used device for your %s! This typically reduces manufacturing emissions by 30-50%% per device.",
			joinSortedUnique(usedDevices)))
	}
	if len(longLived) > 0 {
		out = append(out, fmt.Sprintf(
			"You use your %s for more than 5 years! Extending device life reduces the need for new production and saves valuable resources.",
			joinSortedUnique(longLived)))
	}
	if hasResponsibleEOL {
		out = append(out,
			"You dispose of some devices responsibly! The EU aims for a 65% correct e-waste disposal rate, but many countries are still below this threshold.")
	}
	if p.Inputs.EmailAttachPerDay <= lowAttachEmailsPerDay {
		out = append(out,
			"You keep the exchange of emails with attachments low. An email with an attachment typically weighs almost ten times more than one without.")
	}
	if p.Inputs.CloudGB <= lowCloudGB {
		out = append(out,
			"You keep your cloud storage light by cleaning up files you no longer need! This reduces the energy required to store and maintain them.")
	}
	if p.Inputs.Idle == factors.IdleTurnOff {
		out = append(out,
			"You turn off your computer when not in use. This single action can save over 150 kWh of energy per year for a single computer!")
	}
	if p.Inputs.PagesPerWeek == 0 {
		out = append(out,
			"You never print. This saves paper, ink, and the energy needed for printing... the trees thank you!")
	}
	if p.Result.AIQueriesPerDay <= lowAIQueriesPerDay {
		out = append(out,
			"You use AI sparingly, staying under 20 queries a day. This reduces the energy consumed by high-compute AI models.")
	}

	return out
}
