package chain

// Calldata and log builders for the external test package.
type (
	PartyBundle     = partyBundle
	ObligationTuple = obligationTuple
	IntentTuple     = intentTuple
)

var (
	DarkpoolABI = darkpoolABI

	TopicRecoveryIDRegistered  = topicRecoveryIDRegistered
	TopicNullifierSpent        = topicNullifierSpent
	TopicPublicIntentCreated   = topicPublicIntentCreated
	TopicPublicIntentUpdated   = topicPublicIntentUpdated
	TopicPublicIntentCancelled = topicPublicIntentCancelled
)
