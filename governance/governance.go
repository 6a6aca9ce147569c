// Package governance runs vendor applications through Lua-scripted screening
// rules before they are admitted to the hub. The default rule set checks the
// Bangladesh trade license; operators can replace it with their own script.
package governance

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/Shopify/go-lua"
	"github.com/Shopify/goluago/util"

	"github.com/aura-hub/aurahub/domain"
)

//go:embed rules.lua
var defaultRules string

var (
	// ErrNoScreenFunction is returned when the rule script defines no screen function.
	ErrNoScreenFunction = errors.New("rule script does not define screen(vendor)")
	// ErrBadVerdict is returned when the script yields an unknown status.
	ErrBadVerdict = errors.New("rule script returned an unknown status")
)

// Result is the outcome of screening one application.
type Result struct {
	Status domain.VendorStatus
	Reason string
}

// Engine evaluates vendor applications against a Lua rule script. Each call
// runs in a fresh Lua state, so an Engine is safe for concurrent use.
type Engine struct {
	script string
}

// New returns an engine running the embedded default rules.
func New() *Engine {
	return &Engine{script: defaultRules}
}

// NewFromFile returns an engine running a custom rule script.
func NewFromFile(path string) (*Engine, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule script %s : %w", path, err)
	}
	return &Engine{script: string(script)}, nil
}

// registerMatches exposes Go regular expressions to the rule script as
// matches(pattern, s), since Lua patterns cannot express bounded repetition.
func registerMatches(l *lua.State) {
	l.Register("matches", func(l *lua.State) int {
		pattern := lua.CheckString(l, 1)
		input := lua.CheckString(l, 2)

		re, err := regexp.Compile(pattern)
		if err != nil {
			lua.Errorf(l, fmt.Sprintf("compiling pattern : %s", err.Error()))
			return 0
		}
		l.PushBoolean(re.MatchString(input))
		return 1
	})
}

// Screen evaluates one vendor application and returns the script's verdict.
func (engine *Engine) Screen(vendor domain.Vendor) (Result, error) {
	l := lua.NewState()
	lua.OpenLibraries(l)
	registerMatches(l)

	if err := lua.DoString(l, engine.script); err != nil {
		return Result{}, fmt.Errorf("loading governance rules : %w", err)
	}

	l.Global("screen")
	if !l.IsFunction(-1) {
		return Result{}, ErrNoScreenFunction
	}

	util.DeepPush(l, map[string]any{
		"id":           vendor.ID,
		"name":         vendor.Name,
		"slug":         vendor.Slug,
		"websiteUrl":   vendor.WebsiteURL,
		"status":       string(vendor.Status),
		"description":  vendor.Description,
		"tradeLicense": vendor.TradeLicense,
	})

	if err := l.ProtectedCall(1, 2, 0); err != nil {
		return Result{}, fmt.Errorf("running screen for %s : %w", vendor.Slug, err)
	}

	status, _ := l.ToString(-2)
	reason, _ := l.ToString(-1)
	l.Pop(2)

	switch domain.VendorStatus(status) {
	case domain.VendorApproved, domain.VendorPending, domain.VendorBlocked:
		return Result{Status: domain.VendorStatus(status), Reason: reason}, nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrBadVerdict, status)
	}
}
