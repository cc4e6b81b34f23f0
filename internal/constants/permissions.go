package constants

const (
	ViewData         = "view_data"
	DepositFunds     = "deposit_funds"
	BuyTokens        = "buy_tokens"
	CreateProperty   = "create_property"
	EditProperty     = "edit_property"
	VerifyProperty   = "verify_property"
	DistributeProfit = "distribute_profit"
	AssignRole       = "assign_role"
	MarkRendered     = "mark_rendered"
)
