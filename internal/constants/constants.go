package constants

// Centralized constants for env keys, routes and shared strings.
const (
	// Environment variable keys
	EnvConfigPath  = "EMBERFALL_CONFIG"
	EnvContentPath = "EMBERFALL_CONTENT"
	EnvDBPath      = "EMBERFALL_DB"
	EnvAddr        = "EMBERFALL_ADDR"
	EnvDebug       = "EMBERFALL_DEBUG"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Routes used by the backend router
const (
	RouteAPIPrefix       = "/api"
	RouteVersion         = "/version"
	RouteBestiary        = "/bestiary"
	RouteParties         = "/parties"
	RoutePartyByID       = "/parties/:partyID"
	RouteEncounters      = "/encounters"
	RouteEncounterByCode = "/encounters/:code"
	RouteEncounterAction = "/encounters/:code/action"
	RouteEncounterAbort  = "/encounters/:code/abort"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest        = "Invalid request"
	ErrInvalidEncounterCode  = "Invalid encounter code"
	ErrEncounterNotFound     = "Encounter not found"
	ErrEncounterFinished     = "Encounter already finished"
	ErrPartyNotFound         = "Party not found"
	ErrPartyDefeated         = "Party has no living members"
	ErrUnknownMonster        = "Unknown monster in request"
	ErrNotAwaitingAction     = "Encounter is not waiting for a player action"
	ErrInvalidActionKind     = "Unknown action kind"
	ErrFailedCreateEncounter = "Failed to create encounter"
	ErrFailedStoreAction     = "Failed to store action"
	ErrFailedFetchBestiary   = "Failed to fetch bestiary"
	ErrFailedFetchParty      = "Failed to fetch party"
	ErrFailedCreateParty     = "Failed to create party"
	ErrEncounterSetupFailed  = "Encounter setup failed"
)

// Logging field names
const (
	LogFieldEncounterCode = "encounter_code"
	LogFieldPartyID       = "party_id"
	LogFieldCombatantID   = "combatant_id"
	LogFieldPhase         = "phase"
	LogFieldActionKind    = "action_kind"
	LogFieldAddr          = "addr"
	LogFieldConfigPath    = "config_path"
)
