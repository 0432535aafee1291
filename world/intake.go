package world

// SubmitIntent deposits an intent onto its target ship's per-entity intent
// slot with last-writer-wins semantics for repeated same-kind intents
// within a tick (§5, §9 "Command intents"). This is the thread-safe
// handoff boundary: external callers (the transport layer) call this
// freely from any goroutine; only the engine reads and clears these
// slots, each in the phase that consumes that kind of intent.
func (s *State) SubmitIntent(intent Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ship, ok := s.ships[intent.TargetShip()]
	if !ok {
		return // unknown target; the engine's intake phase also guards this defensively
	}

	switch v := intent.(type) {
	case ThrustIntent:
		ship.Intents.Thrust = &v
	case RotateIntent:
		ship.Intents.Rotate = &v
	case FullStopIntent:
		ship.Intents.FullStop = true
	case EngageWarpIntent:
		ship.Intents.EngageWarp = &v
	case EngageJumpIntent:
		ship.Intents.EngageJump = &v
	case DockRequestIntent:
		ship.Intents.DockRequest = &v
	case UndockIntent:
		ship.Intents.Undock = true
	case TargetIntent:
		ship.Intents.Target = &v
	case FireIntent:
		if ship.Intents.Fire == nil {
			ship.Intents.Fire = map[string]bool{}
		}
		ship.Intents.Fire[v.WeaponID] = true
	case AutoFireIntent:
		if ship.Intents.AutoFire == nil {
			ship.Intents.AutoFire = map[string]bool{}
		}
		ship.Intents.AutoFire[v.WeaponID] = v.Enabled
	case ConfigureWeaponIntent:
		if ship.Intents.ConfigWeapon == nil {
			ship.Intents.ConfigWeapon = map[string]*ConfigureWeaponIntent{}
		}
		ship.Intents.ConfigWeapon[v.WeaponID] = &v
	case LoadAmmoIntent:
		if ship.Intents.LoadAmmo == nil {
			ship.Intents.LoadAmmo = map[string]*LoadAmmoIntent{}
		}
		ship.Intents.LoadAmmo[v.WeaponID] = &v
	case ShieldIntent:
		raise := bool(v.Action)
		ship.Intents.ShieldsUp = &raise
	case ActivateCountermeasureIntent:
		ship.Intents.Countermeasure = &v
	case PointDefenseIntent:
		ship.Intents.PointDefense = &v.Enabled
	case AllocatePowerIntent:
		ship.Intents.AllocatePower = &v
	case AllocateCoolingIntent:
		ship.Intents.AllocateCooling = &v
	case RepairIntent:
		ship.Intents.Repair = &v
	case ScanIntent:
		ship.Intents.Scan = &v
	case AnalyzeIntent:
		ship.Intents.Analyze = &v
	case HailIntent:
		ship.Intents.Hail = &v
	case JamIntent:
		ship.Intents.Jam = &v
	}
}
