package engine

import (
	"math"

	"github.com/hyperion-sim/hyperion/world"
)

// phaseFTL is phase 14: advances the warp-cruise and jump-translation state
// machines. Tachyon blocks any new transition out of Idle, but a charge or
// cruise already under way before the effect landed continues and may
// still complete (§3, §8 boundary behavior).
func (e *Engine) phaseFTL(ships []*world.Ship, dt float64) {
	tun := e.Catalog.Tunables
	chargeTime := tun.WarpChargeTime
	if chargeTime <= 0 {
		chargeTime = 3
	}
	jumpChargeTime := tun.JumpChargeTime
	if jumpChargeTime <= 0 {
		jumpChargeTime = 5
	}
	speedMult := tun.WarpSpeedMultiplier
	if speedMult <= 0 {
		speedMult = 20
	}

	for _, s := range ships {
		if s.Destroyed {
			continue
		}
		tachyoned := s.HasActiveStatus("Tachyon")

		if it := s.Intents.EngageWarp; it != nil {
			s.Intents.EngageWarp = nil
			if tachyoned {
				e.reject(s.ID, world.ReasonFTLBlocked)
			} else if s.WarpState == world.WarpIdle {
				s.WarpState = world.WarpCharging
				s.WarpCharge = 0
				s.WarpFactor = it.WarpFactor
				s.WarpHeading = it.Heading
			}
		}

		switch s.WarpState {
		case world.WarpCharging:
			s.WarpCharge += dt
			if s.WarpCharge >= chargeTime {
				s.WarpState = world.WarpCruising
				e.emit(world.EventFtlEngaged, []world.ShipID{s.ID}, world.FtlPayload{Kind: "warp"})
			}
		case world.WarpCruising:
			speed := tun.MaxVelocity * speedMult * s.WarpFactor
			s.Position = s.Position.Add(world.Vec2{
				X: speed * math.Cos(s.WarpHeading),
				Y: speed * math.Sin(s.WarpHeading),
			}.Scale(dt))
			s.Position = s.Position.Clamped(tun.MaxPosition)
		}

		if it := s.Intents.EngageJump; it != nil {
			s.Intents.EngageJump = nil
			if tachyoned {
				e.reject(s.ID, world.ReasonFTLBlocked)
			} else if s.JumpState == world.JumpIdle {
				s.JumpState = world.JumpCharging
				s.JumpCharge = 0
				s.JumpDestination = it.Destination
			}
		}

		if s.JumpState == world.JumpCharging {
			s.JumpCharge += dt
			if s.JumpCharge >= jumpChargeTime {
				s.JumpState = world.JumpIdle
				s.Position = s.JumpDestination.Clamped(tun.MaxPosition)
				s.Velocity = world.Vec2{}
				e.emit(world.EventFtlEngaged, []world.ShipID{s.ID}, world.FtlPayload{Kind: "jump"})
				e.emit(world.EventFtlDisengaged, []world.ShipID{s.ID}, world.FtlPayload{Kind: "jump"})
			}
		}
	}
}
