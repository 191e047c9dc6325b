package procfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expect      *Command
		expectError bool
	}{
		{
			description: "new command",
			input:       "NEW worker 500 3",
			expect:      &Command{Kind: KindNew, Name: "worker", BurstMs: 500, Priority: 3},
		},
		{
			description: "new command with extra whitespace",
			input:       "  NEW   batch-job   2500   9  ",
			expect:      &Command{Kind: KindNew, Name: "batch-job", BurstMs: 2500, Priority: 9},
		},
		{
			description: "lower case verb",
			input:       "new idle 100 0",
			expect:      &Command{Kind: KindNew, Name: "idle", BurstMs: 100, Priority: 0},
		},
		{
			description: "wait command",
			input:       "WAIT 4 200",
			expect:      &Command{Kind: KindWait, PID: 4, WaitMs: 200},
		},
		{
			description: "unknown verb",
			input:       "KILL 4",
			expectError: true,
		},
		{
			description: "new with missing priority",
			input:       "NEW worker 500",
			expectError: true,
		},
		{
			description: "new with non numeric burst",
			input:       "NEW worker fast 3",
			expectError: true,
		},
		{
			description: "wait with missing duration",
			input:       "WAIT 4",
			expectError: true,
		},
		{
			description: "trailing garbage",
			input:       "WAIT 4 200 extra",
			expectError: true,
		},
		{
			description: "empty line",
			input:       "",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		actual, err := Parse([]byte(testCase.input))
		if testCase.expectError {
			assert.Error(t, err, testCase.description)
			continue
		}
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}
