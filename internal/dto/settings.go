package dto

// SetAccountMappingRequest points a mapping key at an account.
type SetAccountMappingRequest struct {
	AccountID string `json:"accountID" binding:"required"`
}

// AccountMappingsResponse lists mapping keys with their resolved accounts.
// Missing names the keys that still need an account.
type AccountMappingsResponse struct {
	Mappings map[string]string `json:"mappings"`
	Missing  []string          `json:"missing"`
}
