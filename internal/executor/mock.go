package executor

import (
	"fmt"
	"slices"
	"strings"
)

// MockExecutor is a mock implementation of Executor for testing
type MockExecutor struct {
	// ExecuteFunc is called when Execute is invoked
	ExecuteFunc func(config *Config) (*Result, error)
	// Calls tracks all Execute calls for verification
	Calls []MockCall
}

// MockCall represents a single call to Execute
type MockCall struct {
	Config *Config
	Result *Result
	Error  error
}

// NewMockExecutor creates a new mock executor
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Calls: make([]MockCall, 0),
	}
}

// Execute records the call and returns the configured result.
// Without ExecuteFunc it answers with a two-channel reading.
func (m *MockExecutor) Execute(config *Config) (*Result, error) {
	var result *Result
	var err error

	if m.ExecuteFunc != nil {
		result, err = m.ExecuteFunc(config)
	} else {
		result = &Result{
			ExitCode: 0,
			Stdout:   []byte("0.00, 0.00\r\n"),
		}
	}

	if result != nil && config.OutputMode == OutputModeStream && config.Stdout != nil {
		_, _ = config.Stdout.Write(result.Stdout)
	}

	m.Calls = append(m.Calls, MockCall{
		Config: config,
		Result: result,
		Error:  err,
	})

	return result, err
}

// Reset clears all tracked calls
func (m *MockExecutor) Reset() {
	m.Calls = make([]MockCall, 0)
	m.ExecuteFunc = nil
}

// CallCount returns the number of times Execute was called
func (m *MockExecutor) CallCount() int {
	return len(m.Calls)
}

// LastCall returns the last call to Execute, or nil if no calls were made
func (m *MockExecutor) LastCall() *MockCall {
	if len(m.Calls) == 0 {
		return nil
	}
	return &m.Calls[len(m.Calls)-1]
}

// VerifyCommandWithArgs checks if a command with exactly these args was called
func (m *MockExecutor) VerifyCommandWithArgs(command string, args ...string) bool {
	for _, call := range m.Calls {
		if call.Config.Command == command && slices.Equal(call.Config.Args, args) {
			return true
		}
	}
	return false
}

// WithMockResult sets up the mock to return a specific result
func (m *MockExecutor) WithMockResult(result *Result, err error) *MockExecutor {
	m.ExecuteFunc = func(config *Config) (*Result, error) {
		return result, err
	}
	return m
}

// WithMockOutput is a shorthand for a successful run printing out on stdout
func (m *MockExecutor) WithMockOutput(out string) *MockExecutor {
	return m.WithMockResult(&Result{Stdout: []byte(out)}, nil)
}

// String returns a string representation of all calls for debugging
func (m *MockExecutor) String() string {
	if len(m.Calls) == 0 {
		return "MockExecutor: no calls"
	}
	var output strings.Builder
	output.WriteString(fmt.Sprintf("MockExecutor: %d calls\n", len(m.Calls)))
	for i, call := range m.Calls {
		exit := 0
		if call.Result != nil {
			exit = call.Result.ExitCode
		}
		output.WriteString(fmt.Sprintf("  Call %d: %s %v (exit code: %d)\n",
			i, call.Config.Command, call.Config.Args, exit))
	}
	return output.String()
}
