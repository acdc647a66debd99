package entities

// TransactionType categorizes balance history entries
type TransactionType string

const (
	TransactionTypeMessageReward TransactionType = "message_reward"
	TransactionTypeTransferIn    TransactionType = "transfer_in"
	TransactionTypeTransferOut   TransactionType = "transfer_out"
	TransactionTypeDuelWin       TransactionType = "duel_win"
	TransactionTypeDuelLoss      TransactionType = "duel_loss"
)
