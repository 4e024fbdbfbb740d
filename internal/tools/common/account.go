package common

// GetAccountFromArgs extracts the account name from request arguments,
// defaulting to "default" when no account was provided.
func GetAccountFromArgs(args map[string]any) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	return "default"
}
