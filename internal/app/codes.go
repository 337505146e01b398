package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const ticketCodePrefix = "TICKET"

func newTicketID() string {
	return uuid.NewString()
}

// newTicketCode builds the human-readable ticket code: prefix, the last six
// digits of the issuance time in unix milliseconds, and a random uppercase
// token. Collisions are overwhelmingly unlikely but not impossible; the store
// keeps a unique index on the code either way.
func newTicketCode(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	token := strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
	return fmt.Sprintf("%s-%s-%s", ticketCodePrefix, millis, token)
}
