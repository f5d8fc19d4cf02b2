package insights

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"strings"

	"github.com/greendilt/footprint/internal/engine"
	"github.com/greendilt/footprint/internal/factors"
	"github.com/greendilt/footprint/internal/format"
	"github.com/greendilt/footprint/internal/ledger"
)

// maxTipsPerSideCategory caps the tips shown for categories other than the
// top-impact one.
const maxTipsPerSideCategory = 2

// Daily-volume thresholds above which the matching tip fires.
const (
	emailTipThreshold   = 10
	cloudTipThresholdGB = 50
	aiTipThreshold      = 30

	// extendLifeMaxYears is the lifespan at or below which the
	// extend-by-two-years suggestion applies.
	extendLifeMaxYears = 3.0
	extendLifeByYears  = 2.0
)

// rule inspects the profile and either abstains or emits one tip sentence
// with an embedded savings estimate.
type rule func(Profile) (string, bool)

// tipRules is the per-category registry of personalized rules, evaluated in
// order.
var tipRules = map[factors.Category][]rule{
	factors.CategoryDevices: {
		tipBuyRefurbished,
		tipExtendLifespan,
	},
	factors.CategoryEWaste: {
		tipStoredAtHome,
		tipGeneralWaste,
	},
	factors.CategoryDigital: {
		tipCloudStorage,
		tipAttachmentEmails,
		tipIdleLeftOn,
		tipPlainEmails,
	},
	factors.CategoryAI: {
		tipAIVolume,
	},
}

// genericTips are the evergreen suggestions per category.
var genericTips = map[factors.Category][]string{
	factors.CategoryDevices: {
		"Update software regularly. This enhances efficiency and performance, often reducing energy consumption.",
		"Activate power-saving settings, reduce screen brightness and enable dark mode. This lowers energy use.",
		"Choose accessories made from recycled or sustainable materials. This minimizes the environmental impact of your tech choices.",
	},
	factors.CategoryEWaste: {
		"Repair instead of replacing. Fix broken electronics whenever possible to avoid unnecessary waste.",
	},
	factors.CategoryDigital: {
		"Use your internet mindfully: close unused apps, avoid sending large attachments, and turn off video during calls when not essential.",
	},
	factors.CategoryAI: {
		"Use search engines for simple tasks: they consume far less energy than AI tools.",
		"Disable AI-generated results in search engines where your settings allow it.",
		"Prefer smaller AI models when possible. For basic tasks, lighter model variants need far less energy.",
		"Be concise in AI prompts and require concise answers: short inputs and outputs require less processing.",
	},
}

// CategoryTips is the tip set for one category.
type CategoryTips struct {
	Category factors.Category
	Top      bool
	Tips     []string
}

// Tips assembles the tip sets in display order: the top-impact category
// first with every applicable personalized tip plus all of its generic
// tips (deduplicated, first-seen order), then the remaining categories with
// at most two tips each, personalized preferred and generic backfill drawn
// by a deterministic sample seeded from the user's identity so repeated
// views within a session are stable.
func Tips(p Profile, seed string) []CategoryTips {
	top := TopCategory(p.Result)
	personalized := make(map[factors.Category][]string)
	for cat, rules := range tipRules {
		for _, r := range rules {
			if tip, ok := r(p); ok {
				personalized[cat] = append(personalized[cat], tip)
			}
		}
	}

	rng := rand.New(rand.NewSource(seedFrom(seed))) //nolint:gosec // reproducibility, not security

	out := []CategoryTips{{
		Category: top,
		Top:      true,
		Tips:     dedup(append(append([]string{}, personalized[top]...), genericTips[top]...)),
	}}

	for _, cat := range factors.Categories() {
		if cat == top {
			continue
		}
		picked := personalized[cat]
		if len(picked) > maxTipsPerSideCategory {
			picked = picked[:maxTipsPerSideCategory]
		}
		if missing := maxTipsPerSideCategory - len(picked); missing > 0 {
			picked = append(picked, sample(rng, without(genericTips[cat], picked), missing)...)
		}
		if len(picked) > 0 {
			out = append(out, CategoryTips{Category: cat, Tips: picked})
		}
	}
	return out
}

// seedFrom hashes the stable identity string into a PRNG seed.
func seedFrom(identity string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(identity))
	return int64(h.Sum64())
}

// sample draws up to k elements without replacement, deterministically for
// a given rng state.
func sample(rng *rand.Rand, pool []string, k int) []string {
	if len(pool) <= k {
		return pool
	}
	idx := rng.Perm(len(pool))[:k]
	sort.Ints(idx)
	out := make([]string, 0, k)
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}

func without(pool, exclude []string) []string {
	var out []string
	for _, s := range pool {
		skip := false
		for _, e := range exclude {
			if s == e {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, s)
		}
	}
	return out
}

func dedup(tips []string) []string {
	seen := make(map[string]struct{}, len(tips))
	out := make([]string, 0, len(tips))
	for _, t := range tips {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// effectiveCondition mirrors the scoring defaults for half-filled records:
// an unset condition reads as New, an unset sharing as Personal.
func effectiveCondition(r *ledger.Record) ledger.Condition {
	if r.Condition == ledger.ConditionUnset {
		return ledger.ConditionNew
	}
	return r.Condition
}

func effectiveSharing(r *ledger.Record) ledger.Sharing {
	if r.Sharing == ledger.SharingUnset {
		return ledger.SharingPersonal
	}
	return r.Sharing
}

// tipBuyRefurbished fires when a new laptop or desktop is present and
// reports the single device with the largest used-vs-new annual saving.
func tipBuyRefurbished(p Profile) (string, bool) {
	bestSaving := 0.0
	bestNoun := ""

	for _, rec := range p.Records {
		if rec.ID.Type != factors.DeviceLaptop && rec.ID.Type != factors.DeviceDesktop {
			continue
		}
		if rec.Condition != ledger.ConditionNew || rec.Lifespan <= 0 {
			continue
		}
		impact, ok := factors.DeviceFactor(rec.ID.Type)
		if !ok {
			continue
		}
		sharing := effectiveSharing(rec)
		adjNew := ledger.AdjustedYears(rec.Lifespan, ledger.ConditionNew, sharing)
		adjUsed := ledger.AdjustedYears(rec.Lifespan, ledger.ConditionUsed, sharing)
		if adjNew <= 0 || adjUsed <= 0 {
			continue
		}
		saving := impact * (1/adjNew - 1/adjUsed)
		if saving > bestSaving {
			bestSaving = saving
			if rec.ID.Type == factors.DeviceLaptop {
				bestNoun = "laptop"
			} else {
				bestNoun = "desktop"
			}
		}
	}

	if bestSaving <= 0 || bestNoun == "" {
		return "", false
	}
	return fmt.Sprintf(
		"You bought a new %s: next time consider choosing a used or refurbished one. You could save about %s kg CO2e/year (vs a new device with the same usage).",
		bestNoun, format.Kg(bestSaving)), true
}

// tipExtendLifespan fires for short-lived devices and reports the one with
// the largest saving from keeping it two more years.
func tipExtendLifespan(p Profile) (string, bool) {
	bestSaving := 0.0
	var bestType factors.DeviceType
	bestYears := 0.0

	for _, rec := range p.Records {
		if rec.Lifespan <= 0 || rec.Lifespan > extendLifeMaxYears {
			continue
		}
		impact, ok := factors.DeviceFactor(rec.ID.Type)
		if !ok {
			continue
		}
		cond := effectiveCondition(rec)
		sharing := effectiveSharing(rec)
		adjCurr := ledger.AdjustedYears(rec.Lifespan, cond, sharing)
		adjExt := ledger.AdjustedYears(rec.Lifespan+extendLifeByYears, cond, sharing)
		if adjCurr <= 0 || adjExt <= 0 {
			continue
		}
		saving := impact * (1/adjCurr - 1/adjExt)
		if saving > bestSaving {
			bestSaving = saving
			bestType = rec.ID.Type
			bestYears = rec.Lifespan
		}
	}

	if bestSaving <= 0 || bestType == "" {
		return "", false
	}
	return fmt.Sprintf(
		"You plan to use your %s for %.0f years. If you extend it to %.0f, you could save about %s kg CO2e/year.",
		strings.ToLower(string(bestType)), bestYears, bestYears+extendLifeByYears, format.Kg(bestSaving)), true
}

// tipStoredAtHome sums the saving range from recycling or reselling the
// devices hoarded at home instead.
func tipStoredAtHome(p Profile) (string, bool) {
	storeMod, _ := factors.DispositionModifier(factors.DispositionStoreAtHome)
	centerMod, _ := factors.DispositionModifier(factors.DispositionCollectionCenter)
	sellMod, _ := factors.DispositionModifier(factors.DispositionSellDonate)

	var names []string
	savingMin, savingMax := 0.0, 0.0

	for _, rec := range p.Records {
		if rec.Disposition != factors.DispositionStoreAtHome || rec.Lifespan <= 0 {
			continue
		}
		impact, ok := factors.DeviceFactor(rec.ID.Type)
		if !ok {
			continue
		}
		adj := ledger.AdjustedYears(rec.Lifespan, effectiveCondition(rec), effectiveSharing(rec))
		if adj <= 0 {
			continue
		}
		savingMin += max0(impact * (storeMod - centerMod) / adj)
		savingMax += max0(impact * (storeMod - sellMod) / adj)
		names = append(names, string(rec.ID.Type))
	}

	if len(names) == 0 || (savingMin <= 0 && savingMax <= 0) {
		return "", false
	}
	return fmt.Sprintf(
		"You have %s stored at home. Recycling or reusing them could save between %s and %s kg CO2e/year. Don't let them gather dust!",
		joinSortedUnique(names), format.Kg(savingMin), format.Kg(savingMax)), true
}

// tipGeneralWaste sums the saving from redirecting binned devices to the
// best responsible alternative.
func tipGeneralWaste(p Profile) (string, bool) {
	wasteMod, _ := factors.DispositionModifier(factors.DispositionGeneralWaste)
	sellMod, _ := factors.DispositionModifier(factors.DispositionSellDonate)

	var names []string
	saving := 0.0

	for _, rec := range p.Records {
		if rec.Disposition != factors.DispositionGeneralWaste {
			continue
		}
		names = append(names, string(rec.ID.Type))
		if rec.Lifespan <= 0 {
			continue
		}
		impact, ok := factors.DeviceFactor(rec.ID.Type)
		if !ok {
			continue
		}
		adj := ledger.AdjustedYears(rec.Lifespan, effectiveCondition(rec), effectiveSharing(rec))
		if adj <= 0 {
			continue
		}
		saving += max0(impact * (wasteMod - sellMod) / adj)
	}

	if len(names) == 0 || saving <= 0 {
		return "", false
	}
	return fmt.Sprintf(
		"You throw %s away in general waste, which prevents proper recycling or reuse. Bringing them to a certified collection point could save about %s kg CO2e/year.",
		joinSortedUnique(names), format.Kg(saving)), true
}

// tipCloudStorage fires above 50 GB of stored data.
func tipCloudStorage(p Profile) (string, bool) {
	if p.Inputs.CloudGB <= cloudTipThresholdGB {
		return "", false
	}
	impact := p.Inputs.CloudGB * factors.CloudStorageFactor
	return fmt.Sprintf(
		"At the moment, your annual footprint from stored data is %s kg CO2e/year. Declutter your digital space by deleting unnecessary files and emptying trash and spam folders.",
		format.Kg(impact)), true
}

// tipAttachmentEmails fires above 10 attachment emails per day.
func tipAttachmentEmails(p Profile) (string, bool) {
	if p.Inputs.EmailAttachPerDay <= emailTipThreshold {
		return "", false
	}
	impact := p.Inputs.EmailAttachPerDay * factors.EmailAttachFactor * factors.WorkingDays
	return fmt.Sprintf(
		"Currently, your emails with attachments emit around %s kg CO2e/year. Try sharing cloud links instead of large attachments.",
		format.Kg(impact)), true
}

// tipPlainEmails fires above 10 plain emails per day.
func tipPlainEmails(p Profile) (string, bool) {
	if p.Inputs.EmailPlainPerDay <= emailTipThreshold {
		return "", false
	}
	impact := p.Inputs.EmailPlainPerDay * factors.EmailPlainFactor * factors.WorkingDays
	return fmt.Sprintf(
		"Currently, your emails without attachments emit around %s kg CO2e/year. To reduce this, opt for instant messaging where possible.",
		format.Kg(impact)), true
}

// tipIdleLeftOn quantifies the saving from switching the computer off at
// the end of the day.
func tipIdleLeftOn(p Profile) (string, bool) {
	if p.Inputs.Idle != factors.IdleLeaveOn {
		return "", false
	}
	saved := engine.IdleAnnualCost(factors.IdleLeaveOn) - engine.IdleAnnualCost(factors.IdleTurnOff)
	return fmt.Sprintf(
		"You usually leave your computer on in idle mode. Turning it off at the end of the day could save up to %s kg CO2e/year and extend its lifespan.",
		format.Kg(saved)), true
}

// tipAIVolume fires above 30 AI queries per day.
func tipAIVolume(p Profile) (string, bool) {
	total := 0
	for _, q := range p.Inputs.AIQueries {
		total += q
	}
	if total <= aiTipThreshold {
		return "", false
	}
	return fmt.Sprintf(
		"You're asking about %d AI queries per day. Try making more targeted requests to reduce this number and save energy.",
		total), true
}

func max0(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

func joinSortedUnique(names []string) string {
	seen := make(map[string]struct{}, len(names))
	uniq := make([]string, 0, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
	}
	sort.Strings(uniq)
	return strings.Join(uniq, ", ")
}
