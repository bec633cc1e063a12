package domain

// ItemKind distinguishes the two menu categories.
type ItemKind string

const (
	KindFood  ItemKind = "food"
	KindDrink ItemKind = "drink"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Tier classifies a customer purely by cumulative spend.
type Tier string

const (
	TierRegular Tier = "Regular"
	TierBronze  Tier = "Bronze"
	TierSilver  Tier = "Silver"
	TierGold    Tier = "Gold"
)

type SpiceLevel string

const (
	SpiceMild   SpiceLevel = "mild"
	SpiceMedium SpiceLevel = "medium"
	SpiceHot    SpiceLevel = "hot"
)

type Temperature string

const (
	TempHot  Temperature = "hot"
	TempCold Temperature = "cold"
	TempRoom Temperature = "room"
)
