package game

import "fmt"

// PlayerAction is one thing the player can do with a turn.
type PlayerAction int

const (
	ActWait PlayerAction = iota
	ActMove
	ActFire
	ActReload
	ActHeal
	ActBandage
	ActAntiRad
)

// PlayerCommand is a player action with its direction, for moves.
type PlayerCommand struct {
	Action PlayerAction
	DX, DY int
}

// PlayerView is the player's sight radius in tiles for the current weather
// and light.
func (s *Sim) PlayerView() int {
	return int(ViewDistance(s.Weather.Effects(), s.Clock.Light()))
}

// PlayerTarget returns the nearest living hostile the player can see and
// reach with the primary weapon, or nil.
func (s *Sim) PlayerTarget() *Actor {
	p := s.Player
	if p == nil || p.Dead {
		return nil
	}
	w := p.Inventory.Weapon(SlotWeaponPrimary)
	if w == nil {
		return nil
	}
	reach := min(w.Weapon.Range, ViewDistance(s.Weather.Effects(), s.Clock.Light()))
	var best *Actor
	bd := 0.0
	for _, e := range s.Level.Entities() {
		if e == p || e.Dead || e.Faction == p.Faction {
			continue
		}
		d := p.Distance(e)
		if d > reach || !s.Level.Zone.HasLineOfSight(p.X, p.Y, e.X, e.Y) {
			continue
		}
		if best == nil || d < bd {
			best, bd = e, d
		}
	}
	return best
}

// PlayerTurn performs cmd and, when it took a turn, advances the sim one
// tick. Actions that fail (walking into a wall, firing with nobody in
// sight) cost nothing and report false.
func (s *Sim) PlayerTurn(cmd PlayerCommand) bool {
	p := s.Player
	if p == nil || p.Dead {
		return false
	}
	if !s.playerAct(p, cmd) {
		return false
	}
	s.Tick()
	return true
}

func (s *Sim) playerAct(p *Actor, cmd PlayerCommand) bool {
	switch cmd.Action {
	case ActWait:
		return true
	case ActMove:
		return s.playerMove(p, cmd.DX, cmd.DY)
	case ActFire:
		t := s.PlayerTarget()
		if t == nil {
			s.sink.AddMessage("No target in sight.", ColourInfo)
			return false
		}
		return s.playerFire(p, t)
	case ActReload:
		if s.Combat.ReloadFromInventory(p, SlotWeaponPrimary) == 0 {
			s.sink.AddMessage("No ammo to reload.", ColourWarning)
			return false
		}
		return true
	case ActHeal:
		return s.playerUse(p, EffectHeal, "medkit")
	case ActBandage:
		return s.playerUse(p, EffectStopBleeding, "bandage")
	case ActAntiRad:
		return s.playerUse(p, EffectAntiRad, "anti-rad")
	}
	return false
}

func (s *Sim) playerMove(p *Actor, dx, dy int) bool {
	if other := s.Level.ActorAt(p.X+dx, p.Y+dy); other != nil {
		if other.Faction == p.Faction {
			return false
		}
		return s.playerFire(p, other)
	}
	switch p.Move(dx, dy, s.Level.Zone) {
	case Blocked:
		return false
	case Exhausted:
		s.sink.AddMessage("Too exhausted to move.", ColourWarning)
		return false
	}
	if a, ok := s.Level.Zone.AnomalyAt(p.X, p.Y); ok {
		s.sink.AddMessage(fmt.Sprintf("You step into a %s anomaly!", a.Type), ColourDanger)
	}
	return true
}

func (s *Sim) playerFire(p, t *Actor) bool {
	res := s.Combat.Attack(p, t, SlotWeaponPrimary)
	switch res.Outcome {
	case AttackNoWeapon:
		s.sink.AddMessage("No weapon equipped.", ColourWarning)
		return false
	case AttackEmpty:
		s.sink.AddMessage("Click. Out of ammo.", ColourWarning)
	case AttackJammed:
		s.sink.AddMessage("Your weapon jams!", ColourWarning)
	case AttackMissed:
		s.sink.AddMessage("You miss "+t.Name+".", ColourInfo)
	case AttackHit:
		if !res.Report.Killed {
			s.sink.AddMessage(fmt.Sprintf("You hit %s in the %s for %.0f.", t.Name, res.Location, res.Report.Dealt), ColourInfo)
		}
	}
	return true
}

func (s *Sim) playerUse(p *Actor, e ConsumableEffect, what string) bool {
	it := p.FindConsumable(e)
	if it == nil {
		s.sink.AddMessage("No "+what+" left.", ColourWarning)
		return false
	}
	if err := p.UseItem(it); err != nil {
		return false
	}
	s.sink.AddMessage("You use the "+it.Name+".", ColourInfo)
	return true
}
