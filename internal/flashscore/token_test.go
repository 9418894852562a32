package flashscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("01.12. 18:00\nTeamA\nTeamB\n90\n85")
	assert.Equal(t, []string{"01.12. 18:00", "TeamA", "TeamB", "90", "85"}, tokens)
}

func TestTokenize_DropsOvertimeMarker(t *testing.T) {
	tokens := Tokenize("01.12. 18:00\nTeamA\nTeamB\nAOT\n90\n85")
	assert.Equal(t, []string{"01.12. 18:00", "TeamA", "TeamB", "90", "85"}, tokens)
}

func TestTokenize_MarkerMustMatchWholeLine(t *testing.T) {
	tokens := Tokenize("AOT Warriors\n90")
	assert.Equal(t, []string{"AOT Warriors", "90"}, tokens)
}

func TestTokenize_SingleLine(t *testing.T) {
	assert.Equal(t, []string{"just one line"}, Tokenize("just one line"))
}
