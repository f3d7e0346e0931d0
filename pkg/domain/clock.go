package domain

import "time"

// timestampPrecision matches what the postgres adapter can store, so an
// entity read back from storage carries exactly the timestamps it was saved with.
const timestampPrecision = time.Microsecond

func now() time.Time {
	return time.Now().UTC().Truncate(timestampPrecision)
}

// touch returns the timestamp for a mutation that happens after prev. It is
// always strictly later than prev, even if the clock has not moved.
func touch(prev time.Time) time.Time {
	t := now()
	if !t.After(prev) {
		t = prev.Add(timestampPrecision)
	}

	return t
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return now()
	}

	return t
}
