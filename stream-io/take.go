package streamio

// Take 只读取内部Reader的前limit个字节.
type Take struct {
	inner Reader
	limit uint64
}

// Read reports EndOfStream without touching the source once the quota is used up.
// The quota drops by exactly what was transferred. The outcome is classified against len(p),
// so a transfer cut short by the quota is Partial for the caller.
func (t *Take) Read(p []byte) (Outcome, error) {
	if t.limit == 0 {
		return EndOfStream(), nil
	}

	capped := len(p)
	if uint64(capped) > t.limit {
		capped = int(t.limit)
	}
	o, err := t.inner.Read(p[:capped])
	if err != nil {
		return o, err
	}
	switch o.Kind() {
	case KindPartial:
		t.limit -= uint64(o.N())
	case KindComplete:
		t.limit -= uint64(capped)
	default:
		return o, nil
	}
	return Transferred(o.N(), len(p)), nil
}

// Limit returns the remaining quota.
func (t *Take) Limit() uint64 {
	return t.limit
}

// SetLimit resets the remaining quota.
func (t *Take) SetLimit(limit uint64) {
	t.limit = limit
}

// Inner gives back the wrapped source.
func (t *Take) Inner() Reader {
	return t.inner
}

// NewError hands canonical failures to the inner source's constructor.
func (t *Take) NewError(kind Kind, cause error) error {
	return ConstructError(t.inner, kind, cause)
}

func (t *Take) Initializer() Initializer {
	return InitializerOf(t.inner)
}

// ReservationSize keeps a nearly exhausted Take from over-allocating in ReadToEnd.
func (t *Take) ReservationSize() int {
	if t.limit < DefaultReservation {
		return int(t.limit)
	}
	return DefaultReservation
}
