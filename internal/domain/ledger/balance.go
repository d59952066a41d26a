package ledger

// Fold computes the net balance for a product over an arbitrary slice of
// movements: Σ qty(in) − Σ qty(out). With containerID nil the fold spans
// every container plus global movements; with it set, only movements bound
// to that container count. The sum is commutative, so insertion order never
// changes the result.
func Fold(movs []Movement, productID int64, containerID *int64) int64 {
	var total int64
	for _, m := range movs {
		if m.ProductID != productID {
			continue
		}
		if containerID != nil {
			if m.ContainerID == nil || *m.ContainerID != *containerID {
				continue
			}
		}
		if m.Type == MoveIn {
			total += m.Qty
		} else {
			total -= m.Qty
		}
	}
	return total
}
