package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOnTopic(t *testing.T) {
	for _, tc := range []struct {
		response string
		want     bool
	}{
		{response: "YES", want: true},
		{response: "yes", want: true},
		{response: "Yes, this is about fitness.", want: true},
		{response: "NO", want: false},
		{response: "No.", want: false},
		{response: "This is not a relevant question.", want: false},
		// on-topic words win over a negation in the same window, even
		// when the answer as a whole reads as a refusal
		{response: "No, but it mentions nutrition.", want: true},
		{response: "No, this is not health-related.", want: true},
		{response: "It concerns health and sleep.", want: true},
		// a garbled answer fails open
		{response: "qwerty asdf", want: true},
		{response: "", want: true},
		// only the first 50 characters count
		{response: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa yes", want: true},
		// the window is 50 characters, not 50 bytes: the negation here
		// sits past byte 50 but within the first 50 runes
		{response: strings.Repeat("é", 45) + " no", want: false},
	} {
		assert.Equal(t, tc.want, IsOnTopic(tc.response), "response: %q", tc.response)
	}
}

func TestCleanResponse(t *testing.T) {
	assert.Equal(
		t,
		"Eat more protein\nSleep well",
		CleanResponse("1. Eat more protein\n2) Sleep well"),
	)
	assert.Equal(t, "plain answer", CleanResponse("  plain answer \n"))
	assert.Equal(
		t,
		"First advice.\nSecond advice.",
		CleanResponse("  3.   First advice.\n 12)  Second advice.\n"),
	)
	// numbering inside a line stays
	assert.Equal(t, "take 2. then rest", CleanResponse("take 2. then rest"))
}
