package ledger

// pendingOp tags an in-flight remote call with a per-key sequence
// number. Responses are applied only if no newer operation has started
// for the same key, so a slow completion cannot clobber fresher state.
type pendingOp struct {
	key string
	seq uint64
}

func (l *Ledger) begin(key string) pendingOp {
	l.nextSeq++
	l.seq[key] = l.nextSeq
	return pendingOp{key: key, seq: l.nextSeq}
}

// confirm applies the server result unless the operation is stale.
func (l *Ledger) confirm(op pendingOp, apply func()) {
	if l.seq[op.key] != op.seq {
		return
	}
	apply()
}

// invalidatePending drops every in-flight operation. A refresh replaces
// local state wholesale, so a confirm arriving afterwards would act on
// data the refresh already superseded.
func (l *Ledger) invalidatePending() {
	clear(l.seq)
}
