package narrative

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

var offlineReplies = []string{
	"You %s. The forest rustles, but nothing answers.",
	"You %s. A cold wind passes; the path north and the cave south remain.",
	"You %s. Somewhere far off, a crow laughs at you.",
	"You %s. For a moment you feel watched, then the feeling fades.",
}

// Offline narrates without a network connection. The same input always
// yields the same reply.
type Offline struct{}

// Narrate returns a canned reply chosen by the input text.
func (Offline) Narrate(_ context.Context, _ string, input string) (string, error) {
	action := strings.TrimSpace(input)
	action = strings.TrimRight(action, ".!?")
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(action)))
	return fmt.Sprintf(offlineReplies[h.Sum32()%uint32(len(offlineReplies))], action), nil
}
