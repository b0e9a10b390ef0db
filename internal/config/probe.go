package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/alecthomas/kong"
)

// Probe request modes.
const (
	ModeCallTool  = "call-tool"
	ModeListTools = "list-tools"
	ModePing      = "ping"
)

// ProbeCLI holds mcp-probe arguments parsed by Kong.
type ProbeCLI struct {
	Endpoint    string        `kong:"help='MCP endpoint, usually the proxy /mcp URL.',default='http://127.0.0.1:8080/mcp',env='PROBE_ENDPOINT'"`
	Token       string        `kong:"help='Bearer token sent in Authorization.',env='PROBE_TOKEN'"`
	User        string        `kong:"help='Basic auth user (used when no token is given).',env='AUTH_USER'"`
	Password    string        `kong:"help='Basic auth password.',env='AUTH_PASS'"`
	Count       int           `kong:"help='Number of requests to send.',default='20'"`
	Interval    time.Duration `kong:"help='Delay between requests, per worker.',default='500ms'"`
	Workers     int           `kong:"help='Concurrent workers.',default='1'"`
	Mode        string        `kong:"help='Request type to emit.',enum='call-tool,list-tools,ping',default='call-tool'"`
	Tool        string        `kong:"help='Tool name when mode=call-tool.',default='mock-tool'"`
	Prompt      string        `kong:"help='Prompt argument for call-tool.',default='hello from mock client'"`
	Timeout     time.Duration `kong:"help='Per-request timeout.',default='10s'"`
	LogLevel    string        `kong:"help='Log level: debug|info|warn|error.',default='info',env='LOG_LEVEL'"`
	MetricsFile string        `kong:"help='Write probe metrics here when done, in node_exporter textfile format.'"`

	Version kong.VersionFlag `kong:"help='Print version and exit.'"`
}

// Validate checks the probe arguments for consistency.
func (p *ProbeCLI) Validate() error {
	u, err := url.Parse(p.Endpoint)
	if err != nil {
		return fmt.Errorf("endpoint is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must use http or https; got %q", p.Endpoint)
	}
	if p.Workers < 1 {
		return errors.New("--workers must be at least 1")
	}
	if p.Count < 0 {
		return fmt.Errorf("--count must be non-negative; got %d", p.Count)
	}
	if p.Interval < 0 {
		return fmt.Errorf("--interval must be non-negative; got %s", p.Interval)
	}
	switch p.Mode {
	case ModeCallTool, ModeListTools, ModePing:
	default:
		return fmt.Errorf("--mode must be one of: %s, %s, %s; got %q", ModeCallTool, ModeListTools, ModePing, p.Mode)
	}
	return nil
}
