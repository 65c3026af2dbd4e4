package constants

// HopePointCategory tags a ledger entry with the kind of act that earned it.
type HopePointCategory string

const (
	CategoryGeneral        HopePointCategory = "General"
	CategoryHelpProvided   HopePointCategory = "HelpProvided"
	CategoryEncouragement  HopePointCategory = "Encouragement"
	CategorySilentHero     HopePointCategory = "SilentHero"
	CategoryCommunityGift  HopePointCategory = "CommunityGift"
	CategoryVoiceForVoice  HopePointCategory = "VoiceForVoiceless"
	CategoryEventSupport   HopePointCategory = "EventSupport"
	CategoryTapestryWeaver HopePointCategory = "TapestryWeaver"
)

func (c HopePointCategory) String() string { return string(c) }

// IsValidCategory reports whether a category name belongs to the
// HopePointCategory taxonomy.
func IsValidCategory(s string) bool {
	switch HopePointCategory(s) {
	case CategoryGeneral, CategoryHelpProvided, CategoryEncouragement,
		CategorySilentHero, CategoryCommunityGift, CategoryVoiceForVoice,
		CategoryEventSupport, CategoryTapestryWeaver:
		return true
	}
	return false
}

// EchoCategoryAllowlist is the fixed set of category names the ledger
// aggregator counts as echo activity. It is kept as its own literal list
// rather than derived from HopePointCategory: the two taxonomies have
// drifted historically and the aggregator must keep matching what is
// actually in the ledger.
var EchoCategoryAllowlist = []string{
	"General",
	"HelpProvided",
	"SilentHero",
	"VoiceForVoiceless",
}

// CommendationCategories are the categories counted as commendations
// received when the aggregator rebuilds per-user totals.
var CommendationCategories = []string{
	"SilentHero",
	"CommunityGift",
	"VoiceForVoiceless",
}
