package crew

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mgpai22/filmcrew/internal/subtitle"
	"github.com/mgpai22/filmcrew/internal/textgen"
)

// DecodeNarration extracts narration units from a generator reply. The
// array may be wrapped in a code fence or surrounded by prose.
func DecodeNarration(reply string) ([]subtitle.NarrationUnit, error) {
	cleaned := textgen.CleanResponse(reply)

	var units []subtitle.NarrationUnit
	if err := json.Unmarshal([]byte(cleaned), &units); err == nil {
		return nonEmptyUnits(units)
	}

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end <= start {
		return nil, errors.New("no JSON array in narration reply")
	}

	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &units); err != nil {
		return nil, fmt.Errorf("failed to decode narration units: %w", err)
	}
	return nonEmptyUnits(units)
}

func nonEmptyUnits(units []subtitle.NarrationUnit) ([]subtitle.NarrationUnit, error) {
	if len(units) == 0 {
		return nil, errors.New("narration reply holds no units")
	}
	return units, nil
}

// NarrationSRT turns a Narrator reply into SRT text. A reply that is not a
// unit array is returned as is, so the persistence gate can judge it.
func NarrationSRT(reply string, opts subtitle.NarrationOptions) (string, error) {
	units, err := DecodeNarration(reply)
	if err != nil {
		return textgen.CleanResponse(reply), err
	}

	srt, err := subtitle.BuildNarration(units, opts)
	if err != nil {
		return textgen.CleanResponse(reply), err
	}
	return srt, nil
}
