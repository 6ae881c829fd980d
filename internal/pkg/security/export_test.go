package security

import "time"

func SetCSRFClock(c *CSRFCookieBaker, now func() time.Time) {
	c.now = now
}
