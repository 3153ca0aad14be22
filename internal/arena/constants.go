package arena

const (
	// Arena geometry defaults. The battle config can override radius,
	// margin, and spacing; the placement retry cap is fixed.
	defaultArenaRadius = 280.0
	defaultSpawnMargin = 30.0
	defaultMinSpacing  = 24.0
	placementAttempts  = 100

	// Striker disengage window after landing a hit. Backing off from a
	// bulwark takes longer because trading blows with one is lethal.
	retreatDuration       = 0.55 // seconds
	retreatDurationVsTank = 0.9
	retreatAwayWeight     = 0.6
	retreatLateralWeight  = 0.4

	// Ranger steering. The threat radius is a multiple of the preferred
	// band minimum; inside it the ranger keeps adjusting instead of
	// holding position.
	evadeRadius         = 60.0
	evadeProjectileBias = 1.5
	evadeBlendWeight    = 0.7
	steerBlendWeight    = 0.3
	evadeThreshold      = 1e-3
	threatBandMultiple  = 1.25
	rangerTurnRate      = 6.0 // radians per second

	// Projectiles travel in a straight line and die on first contact.
	projectileSpeed      = 260.0
	projectileRadius     = 3.0
	projectileSpawnGap   = 2.0
	projectileLifeFactor = 1.4 // lifetime headroom past nominal range
)
