package game

import (
	"errors"
	"testing"

	"github.com/Garsondee/Zone-Sense/internal/world"
)

func TestMove_ExhaustedDiagonalKeepsStamina(t *testing.T) {
	z := openZone(10, 10)
	a := NewActor("a", "a", "stalker", "x", 5, 5, 100)
	a.Stats.Stamina = 0
	if got := a.Move(1, 1, z); got != Exhausted {
		t.Fatalf("want exhausted, got %s", got)
	}
	if a.Stats.Stamina != 0 || a.X != 5 || a.Y != 5 {
		t.Fatalf("failed move must not change state: stamina %.1f pos (%d,%d)", a.Stats.Stamina, a.X, a.Y)
	}

	a.Stats.Stamina = 1.2
	if got := a.Move(1, 1, z); got != Exhausted {
		t.Fatalf("diagonal costs 1.4, 1.2 stamina should not be enough, got %s", got)
	}
	if got := a.Move(1, 0, z); got != Moved || !approx(a.Stats.Stamina, 0.2) {
		t.Fatalf("straight step should cost 1: %s stamina %.2f", got, a.Stats.Stamina)
	}
}

func TestMove_BlockedBeforeStamina(t *testing.T) {
	z := openZone(10, 10)
	z.SetTerrain(6, 5, world.TerrainWall)
	a := NewActor("a", "a", "stalker", "x", 5, 5, 100)
	a.Stats.Stamina = 0
	if got := a.Move(1, 0, z); got != Blocked {
		t.Fatalf("wall should block even when exhausted, got %s", got)
	}
	a.X, a.Y = 0, 0
	if got := a.Move(-1, 0, z); got != Blocked {
		t.Fatalf("edge of zone should block, got %s", got)
	}
}

func TestMove_ArmorPenalty(t *testing.T) {
	z := openZone(10, 10)
	a := NewActor("a", "a", "stalker", "x", 5, 5, 100)
	vest := testVest(0.3)
	vest.Armor.MovementPenalty = 0.5
	_ = a.Inventory.Equip(vest, SlotTorso)
	pants := NewArmor("Pants", 1, ArmorSpec{Slot: SlotLegs, MovementPenalty: 0.25})
	_ = a.Inventory.Equip(pants, SlotLegs)

	if got := a.MoveCost(1, 1); !approx(got, 1.75*1.4) {
		t.Fatalf("diagonal cost with armor: want %.3f, got %.3f", 1.75*1.4, got)
	}
	a.Move(0, 1, z)
	if !approx(a.Stats.Stamina, 100-1.75) {
		t.Fatalf("stamina after step: %.2f", a.Stats.Stamina)
	}
}

func TestRegenerate_Capped(t *testing.T) {
	a := NewActor("a", "a", "stalker", "x", 0, 0, 100)
	a.Regenerate()
	if a.Stats.Stamina != a.Stats.MaxStamina {
		t.Fatalf("stamina should not exceed max")
	}
	a.Stats.Stamina = 50
	a.Regenerate()
	if a.Stats.Stamina != 51 {
		t.Fatalf("regen should add 1, got %.1f", a.Stats.Stamina)
	}
}

func TestInventory_CapacityAndWeight(t *testing.T) {
	inv := NewInventory()
	inv.Capacity = 2
	if err := inv.AddItem(NewConsumable("Bandage", 0.1, EffectStopBleeding, 0)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := inv.AddItem(&Item{Kind: ItemConsumable, Name: "Anvil", Weight: 60}); !errors.Is(err, ErrTooHeavy) {
		t.Fatalf("want ErrTooHeavy, got %v", err)
	}
	_ = inv.AddItem(NewConsumable("Bandage", 0.1, EffectStopBleeding, 0))
	if err := inv.AddItem(NewConsumable("Bandage", 0.1, EffectStopBleeding, 0)); !errors.Is(err, ErrInventoryFull) {
		t.Fatalf("want ErrInventoryFull, got %v", err)
	}
}

func TestInventory_EquipSwapsPrevious(t *testing.T) {
	inv := NewInventory()
	first := testVest(0.2)
	second := testVest(0.4)
	_ = inv.AddItem(second)
	if err := inv.Equip(first, SlotTorso); err != nil {
		t.Fatalf("equip: %v", err)
	}
	if err := inv.Equip(second, SlotTorso); err != nil {
		t.Fatalf("equip: %v", err)
	}
	if inv.Equipped[SlotTorso] != second {
		t.Fatalf("second vest should be worn")
	}
	if len(inv.Items) != 1 || inv.Items[0] != first {
		t.Fatalf("first vest should be back in the bag, got %d items", len(inv.Items))
	}
	if err := inv.Equip(testRifle(), SlotHead); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("rifle on head: want ErrInvalidSlot, got %v", err)
	}
	if err := inv.Equip(testVest(0.1), SlotLegs); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("torso armor on legs: want ErrInvalidSlot, got %v", err)
	}
	if err := inv.Unequip(SlotTorso); err != nil || inv.Equipped[SlotTorso] != nil || len(inv.Items) != 2 {
		t.Fatalf("unequip should return the vest to the bag: %v", err)
	}
}

func TestInventory_ArmorForLocation(t *testing.T) {
	inv := NewInventory()
	helmet := NewArmor("Helmet", 1, ArmorSpec{Slot: SlotHead})
	vest := testVest(0.3)
	_ = inv.Equip(helmet, SlotHead)
	_ = inv.Equip(vest, SlotTorso)
	cases := map[string]*Item{
		LocationHead:     helmet,
		LocationTorso:    vest,
		LocationLeftArm:  vest,
		LocationRightArm: vest,
		LocationLeftLeg:  nil,
		LocationRightLeg: nil,
	}
	for loc, want := range cases {
		if got := inv.ArmorFor(loc); got != want {
			t.Fatalf("%s: wrong armor", loc)
		}
	}
}

func TestUseItem(t *testing.T) {
	p := NewPlayer(0, 0)
	p.Stats.Health = 20
	p.Combat.BleedingRate = 2
	p.Combat.RadiationLevel = 80
	p.Combat.Effects[EffectRadiationSickness] = 30

	med := p.FindConsumable(EffectHeal)
	if med == nil {
		t.Fatalf("player should start with a medkit")
	}
	if err := p.UseItem(med); err != nil {
		t.Fatalf("use medkit: %v", err)
	}
	if p.Stats.Health != 70 || p.Combat.BleedingRate != 0 {
		t.Fatalf("medkit: health %.0f bleeding %.1f", p.Stats.Health, p.Combat.BleedingRate)
	}
	if err := p.UseItem(med); !errors.Is(err, ErrNotCarried) {
		t.Fatalf("medkit should be consumed, got %v", err)
	}

	if err := p.UseItem(p.FindConsumable(EffectAntiRad)); err != nil {
		t.Fatalf("use antirad: %v", err)
	}
	if p.Combat.RadiationLevel != 30 {
		t.Fatalf("antirad should remove 50 radiation, got %.0f", p.Combat.RadiationLevel)
	}
	if _, ok := p.Combat.Effects[EffectRadiationSickness]; ok {
		t.Fatalf("antirad should cure radiation sickness")
	}
	if err := p.UseItem(p.Inventory.Weapon(SlotWeaponPrimary)); !errors.Is(err, ErrNotConsumable) {
		t.Fatalf("weapons are not consumable, got %v", err)
	}
}
