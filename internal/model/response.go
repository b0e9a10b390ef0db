// Package model defines the payloads the mock servers and the probe exchange.
package model

// Fixed identity and quota values served by the mocks.
const (
	RemoteEmail = "admin@example.com"
	RemoteName  = "admin"

	UsageLimit = 1000
	MockName   = "tavily-upstream"
)

// UsageReport is the body of GET /usage.
type UsageReport struct {
	Key     KeyUsage     `json:"key"`
	Account AccountUsage `json:"account"`
}

// KeyUsage reports the per-key quota.
type KeyUsage struct {
	Limit int `json:"limit"`
	Usage int `json:"usage"`
}

// AccountUsage reports the account plan quota.
type AccountUsage struct {
	PlanLimit int `json:"plan_limit"`
	PlanUsage int `json:"plan_usage"`
}

// DefaultUsage returns the canned usage report: nothing used, fixed limits.
func DefaultUsage() UsageReport {
	return UsageReport{
		Key:     KeyUsage{Limit: UsageLimit},
		Account: AccountUsage{PlanLimit: UsageLimit},
	}
}

// MCPEcho is the body returned for POST requests under the MCP prefix.
type MCPEcho struct {
	OK        bool   `json:"ok"`
	Mock      string `json:"mock"`
	Path      string `json:"path"`
	Method    string `json:"method"`
	BodyBytes int64  `json:"body_bytes"`
}

// NotFound is the JSON body for unknown upstream routes.
type NotFound struct {
	Error string `json:"error"`
	Path  string `json:"path"`
}
