package session_constants

const MaxPlayers = 4
const MaxPlayerNameLength = 20

// Rewards per player
const (
	DefaultRewardsPerPlayer = 3
	MinRewardsPerPlayer     = 1
	MaxRewardsPerPlayer     = 10
)

// Code alphabets and lengths
const CODE_ALPHABET = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const SESSION_CODE_LENGTH = 5
const RETRIEVAL_CODE_LENGTH = 8
const MAX_CODE_ATTEMPTS = 32

const MaxCandidatesPerPlayer = 10

// Bundle construction
const BASE_BUNDLE_COUNT = 5

// Luck defaults (overridable through config)
const (
	LUCK_VARIANCE           = 0.22
	LUCK_MIN_MULTIPLIER     = 0.5
	LUCK_MAX_MULTIPLIER     = 2.0
	LUCK_TOLERANCE          = 0.3
	LUCK_ATTEMPT_MULTIPLIER = 10
)
