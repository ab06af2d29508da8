package game

import (
	"math"
	"math/rand"

	"github.com/Garsondee/Zone-Sense/internal/world"
	"github.com/rs/zerolog"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func openZone(w, h int) *world.Zone {
	return world.NewZone(world.Coord{}, world.ZoneWilderness, w, h, world.TerrainGrass)
}

func testRifle() *Item {
	return NewWeapon("Test Rifle", 3, WeaponSpec{
		Damage: 10, Range: 10, Accuracy: 1, Ammo: 30, MaxAmmo: 30,
		JamChance: 0, Caliber: "5.45x39",
	})
}

func testVest(prot float64) *Item {
	return NewArmor("Test Vest", 5, ArmorSpec{
		Slot:       SlotTorso,
		Protection: map[DamageType]float64{DamagePhysical: prot, DamageRadiation: prot},
	})
}

// armed returns an actor with the test rifle equipped.
func armed(id, faction string, x, y int, health float64) *Actor {
	a := NewActor(id, id, "stalker", faction, x, y, health)
	_ = a.Inventory.Equip(testRifle(), SlotWeaponPrimary)
	return a
}

func testTemplates() Templates {
	return Templates{
		"bandit": {
			Name: "bandit", Display: "Bandit", Faction: "bandits", SquadRole: "assault",
			Health: 80,
			Weapon: NewWeapon("Worn AK-74", 3.6, WeaponSpec{
				Damage: 25, Range: 8, Accuracy: 0.7, Ammo: 30, MaxAmmo: 30,
				JamChance: 0.05, Caliber: "5.45x39",
			}),
			Armor: []*Item{NewArmor("Leather Jacket", 2, ArmorSpec{
				Slot:       SlotTorso,
				Protection: map[DamageType]float64{DamagePhysical: 0.2, DamageRadiation: 0.1},
			})},
		},
		"loner": {
			Name: "loner", Display: "Loner", Faction: "loners", SquadRole: "support",
			Health: 100,
			Weapon: NewWeapon("Fort-12", 0.9, WeaponSpec{
				Damage: 22, Range: 6, Accuracy: 0.75, Ammo: 12, MaxAmmo: 12,
				JamChance: 0.03, Caliber: "9x18",
			}),
		},
	}
}

func testContext(lvl *Level, seed int64) *AIContext {
	cm := NewCombatManager(seed, NewMessageLog())
	return &AIContext{
		Level:   lvl,
		Terrain: lvl.Zone,
		Weather: WeatherClear,
		Effects: ClearEffects,
		Light:   1,
		Combat:  cm,
		Rng:     rand.New(rand.NewSource(seed)), // #nosec G404 -- test
		Log:     zerolog.Nop(),
	}
}
