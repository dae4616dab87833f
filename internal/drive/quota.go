package drive

// QuotaTracker keeps the running total of bytes an owner has stored. The
// total is recomputed once per session by summation and maintained
// incrementally afterwards: add on create, subtract on delete. Rejected
// admissions never change the total.
type QuotaTracker struct {
	used  int64
	limit int64
}

func NewQuotaTracker(used, limit int64) *QuotaTracker {
	return &QuotaTracker{used: used, limit: limit}
}

// CanAdmit reports whether candidateBytes more can be stored without
// crossing the limit.
func (q *QuotaTracker) CanAdmit(candidateBytes int64) bool {
	return q.used+candidateBytes <= q.limit
}

func (q *QuotaTracker) Add(n int64) {
	q.used += n
}

func (q *QuotaTracker) Subtract(n int64) {
	q.used -= n
	if q.used < 0 {
		q.used = 0
	}
}

func (q *QuotaTracker) Used() int64 {
	return q.used
}

func (q *QuotaTracker) Limit() int64 {
	return q.limit
}

// SetLimit replaces the limit, e.g. after a plan change.
func (q *QuotaTracker) SetLimit(limit int64) {
	q.limit = limit
}
