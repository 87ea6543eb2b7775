package loot

import "github.com/jwebster45206/zoinkies/pkg/state"

func one(id string, weight float64) Entry {
	return Entry{ObjectTypeID: id, Weight: weight, MinQuantity: 1, MaxQuantity: 1}
}

// MinionTable is sampled once per minion victory.
var MinionTable = Table{
	one(state.Helmet1, 0.2),
	one(state.Helmet2, 0.05),
	one(state.BodyArmor1, 0.2),
	one(state.BodyArmor2, 0.05),
	one(state.Shield1, 0.2),
	one(state.Shield2, 0.05),
	one(state.Weapon1, 0.2),
	one(state.Weapon2, 0.05),
}

// GeneralTable is sampled twice per general (tower) victory.
var GeneralTable = Table{
	one(state.GoldKey, 0.4),
	one(state.Helmet2, 0.1),
	one(state.Helmet3, 0.05),
	one(state.BodyArmor2, 0.1),
	one(state.BodyArmor3, 0.05),
	one(state.Shield2, 0.1),
	one(state.Shield3, 0.05),
	one(state.Weapon2, 0.1),
	one(state.Weapon3, 0.05),
}

// ChestTable is sampled twice per opened chest.
var ChestTable = Table{
	one(state.Helmet1, 0.15),
	one(state.Helmet2, 0.07),
	one(state.Helmet3, 0.03),
	one(state.BodyArmor1, 0.15),
	one(state.BodyArmor2, 0.07),
	one(state.BodyArmor3, 0.03),
	one(state.Shield1, 0.15),
	one(state.Shield2, 0.07),
	one(state.Shield3, 0.03),
	one(state.Weapon1, 0.15),
	one(state.Weapon2, 0.07),
	one(state.Weapon3, 0.03),
}

// Tables lists the fixed tables by name, for configuration checks.
var Tables = map[string]Table{
	"minion":  MinionTable,
	"general": GeneralTable,
	"chest":   ChestTable,
}
