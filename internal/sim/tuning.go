package sim

// Tuning is the world constant table: field geometry, handling, rates, and
// pacing. DefaultTuning is the balanced baseline; the config layer overrides
// individual values from YAML and danger presets before a run starts. Runs
// copy their Tuning at creation and never change it.
type Tuning struct {
	// Field geometry
	FieldBound     float64 // player flight box half-extent
	TravelBound    float64 // asteroid travel box half-extent
	AsteroidCount  int
	MinRockRadius  float64
	MaxRockRadius  float64
	SpawnClearance float64 // keep-out distance around the player start and freighter

	// Craft handling
	MaxSpeed     float64 // top forward speed at thrust multiplier 1
	ThrottleStep float64 // throttle notch per tap
	TurnRate     float64 // rad/s at full hull
	AccelRate    float64 // exponential approach rate toward target speed
	DriftDecay   float64 // lateral velocity decay rate
	WallDamping  float64 // velocity multiplier on an axis clamped at the bounds
	PlayerRadius float64
	PlayerMass   float64

	// Contact resolution
	RockRestitution   float64
	HullImpactSpeed   float64 // closing speed under which the hull shrugs a rock off
	HullImpactScale   float64 // hull damage per unit of excess closing speed
	ImpactGrace       float64 // player re-hit cooldown
	PirateImpactSpeed float64
	PirateImpactScale float64 // pirate damage per closing speed times rock mass
	PirateImpactGrace float64
	PirateImpactDelay float64 // boarding delay granted per rock strike

	// Grabber and drill
	ExtractRate       float64 // units per second at drill multiplier 1
	GrabStandoff      float64 // anchor distance past the rock surface
	GrabPullGain      float64 // spring gain toward the anchor
	GrabPullDamp      float64 // exponential damping on the held rock
	FlingBase         float64
	FlingSpeedGain    float64 // fling speed per unit of forward speed
	FlingThrottleGain float64 // fling speed per unit of throttle
	FlingCapBase      float64 // fling cap for the smallest rock, scaled down by radius
	RareCargoChance   float64 // fraction of rocks carrying a sealed relic case
	RareCargoValue    int     // delivery value per rare case

	// Projectiles
	CargoShotSpeed   float64
	WeaponShotSpeed  float64
	ShotTTL          float64
	ShotRadius       float64
	ShotBoundsPad    float64 // shots live slightly past the travel bounds
	CargoDamageScale float64 // damage per unit value of the flung resource
	CargoDelayScale  float64 // boarding delay per unit value
	WeaponDelayBonus float64 // boarding delay per cannon round

	// Pirate pacing
	PirateTriggerMin  float64 // earliest spawn roll, seconds
	PirateTriggerMax  float64
	BoardTime         float64 // boarding countdown at spawn; also its ceiling
	PirateHull        float64
	PirateSpeed       float64
	PirateSteerRate   float64 // velocity lerp rate toward the orbit point
	PirateEntryDist   float64 // spawn distance from the freighter
	PirateRadius      float64
	PirateMass        float64
	OrbitRadiusBase   float64
	OrbitRadiusVar    float64
	OrbitAngularSpeed float64 // rad/s around the freighter
	OrbitWobbleRate   float64 // rad/s of the radius oscillation
	RamDamage         float64 // base mutual ram damage
	RamSpeedScale     float64 // extra ram damage per closing speed
	RamGrace          float64
	RamDelay          float64 // boarding delay granted per ram

	// Freighter and mission
	MissionTime     float64 // countdown seconds; the freighter crosses the field in this time
	ApproachRadius  float64 // dock toggle works inside this
	DockRadius      float64 // dock ring the craft snaps to
	UnloadRate      float64 // cargo units per second while docked
	RepairRate      float64 // hull points per second while docked
	FreighterRadius float64

	// Stepping
	MaxStepDt float64 // wall-clock delta clamp; stalls lose time
	EventCap  int
	OreBias   float64 // ore quality bias in [0, 1], set by danger presets
}

// DefaultTuning returns the balanced baseline table.
func DefaultTuning() Tuning {
	return Tuning{
		FieldBound:     60,
		TravelBound:    70,
		AsteroidCount:  14,
		MinRockRadius:  1.5,
		MaxRockRadius:  5.0,
		SpawnClearance: 12,

		MaxSpeed:     18,
		ThrottleStep: 0.25,
		TurnRate:     1.6,
		AccelRate:    1.8,
		DriftDecay:   1.2,
		WallDamping:  0.4,
		PlayerRadius: 1.2,
		PlayerMass:   2.0,

		RockRestitution:   0.55,
		HullImpactSpeed:   6.0,
		HullImpactScale:   2.2,
		ImpactGrace:       0.33,
		PirateImpactSpeed: 4.0,
		PirateImpactScale: 0.12,
		PirateImpactGrace: 0.5,
		PirateImpactDelay: 2.5,

		ExtractRate:       0.8,
		GrabStandoff:      2.5,
		GrabPullGain:      2.2,
		GrabPullDamp:      1.6,
		FlingBase:         6.0,
		FlingSpeedGain:    0.6,
		FlingThrottleGain: 4.0,
		FlingCapBase:      30.0,
		RareCargoChance:   0.01,
		RareCargoValue:    150,

		CargoShotSpeed:   26,
		WeaponShotSpeed:  40,
		ShotTTL:          4.0,
		ShotRadius:       0.5,
		ShotBoundsPad:    15,
		CargoDamageScale: 0.9,
		CargoDelayScale:  0.16,
		WeaponDelayBonus: 1.2,

		PirateTriggerMin:  20,
		PirateTriggerMax:  45,
		BoardTime:         75,
		PirateHull:        60,
		PirateSpeed:       14,
		PirateSteerRate:   1.4,
		PirateEntryDist:   55,
		PirateRadius:      2.2,
		PirateMass:        6.0,
		OrbitRadiusBase:   10,
		OrbitRadiusVar:    4,
		OrbitAngularSpeed: 0.5,
		OrbitWobbleRate:   0.3,
		RamDamage:         12,
		RamSpeedScale:     0.8,
		RamGrace:          0.6,
		RamDelay:          3.0,

		MissionTime:     240,
		ApproachRadius:  10,
		DockRadius:      4,
		UnloadRate:      2.0,
		RepairRate:      4.0,
		FreighterRadius: 5,

		MaxStepDt: 0.1,
		EventCap:  32,
		OreBias:   0.25,
	}
}
