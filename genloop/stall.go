package genloop

import (
	"crypto/sha256"
	"fmt"
)

// candidateSignature computes a deterministic signature for a candidate's
// content.
func candidateSignature(content string) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", h[:8])
}

// detectStall checks if the last windowSize candidate signatures follow a
// repeating pattern of length 1 or 2. A stalled generator is producing the
// same failing output despite feedback, so further identical feedback is
// unlikely to help.
func detectStall(sigs []string, windowSize int) bool {
	if len(sigs) < windowSize {
		return false
	}
	window := sigs[len(sigs)-windowSize:]

	for patternLen := 1; patternLen <= 2; patternLen++ {
		if windowSize%patternLen != 0 {
			continue
		}
		pattern := window[:patternLen]
		allMatch := true
		for i := patternLen; i < windowSize; i += patternLen {
			for j := 0; j < patternLen; j++ {
				if window[i+j] != pattern[j] {
					allMatch = false
					break
				}
			}
			if !allMatch {
				break
			}
		}
		if allMatch {
			return true
		}
	}

	return false
}
