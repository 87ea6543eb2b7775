package state

// Object type ids shared between the reference catalog, the world and the
// player inventory. The catalog is reconciled against these on load.
const (
	Minion        = "minion"
	General       = "general"
	Tower         = "tower"
	Chest         = "chest"
	EnergyStation = "energy_station"

	GoldKey     = "gold_key"
	DiamondKey  = "diamond_key"
	FreedLeader = "freed_leader"

	Helmet1 = "helmet_1"
	Helmet2 = "helmet_2"
	Helmet3 = "helmet_3"

	BodyArmor1 = "body_armor_1"
	BodyArmor2 = "body_armor_2"
	BodyArmor3 = "body_armor_3"

	Shield1 = "shield_1"
	Shield2 = "shield_2"
	Shield3 = "shield_3"

	Weapon1 = "weapon_1"
	Weapon2 = "weapon_2"
	Weapon3 = "weapon_3"

	Character1 = "character_1"
	Character2 = "character_2"
	Character3 = "character_3"
	Character4 = "character_4"
)

// Item is an object type id and a quantity. Inventory entries are always
// positive; negative quantities only appear in rewards summaries to report a
// loss.
type Item struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// RewardsData describes what was gained or lost by one resolution.
type RewardsData struct {
	ID    string `json:"id"`
	Items []Item `json:"items"`
}

// BattleData is the ephemeral setup of a battle. It is never persisted.
type BattleData struct {
	ID                   string `json:"id"`
	OpponentTypeID       string `json:"opponent_type_id"`
	PlayerStarts         bool   `json:"player_starts"`
	Cooldown             string `json:"cooldown,omitempty"` // ISO-8601 duration
	EnergyLevel          int    `json:"energy_level"`
	MaxAttackScoreBonus  int    `json:"max_attack_score_bonus"`
	MaxDefenseScoreBonus int    `json:"max_defense_score_bonus"`
}

// BattleSummaryData is the outcome of a battle.
type BattleSummaryData struct {
	Winner     bool         `json:"winner"`
	WonTheGame bool         `json:"won_the_game"`
	Rewards    *RewardsData `json:"rewards,omitempty"`
}

// EnergyData reports the energy restored by an energy station.
type EnergyData struct {
	ID             string `json:"id"`
	AmountRestored int    `json:"amount_restored"`
}
