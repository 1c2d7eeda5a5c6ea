package fm

// bucketList is the index-based gain bucket structure of spec §3.1/§9: for
// each side, a doubly-linked chain of cell ids per clip-gain bucket, plus a
// head pointer to the highest non-empty bucket for O(1) candidate
// selection. Rather than the C++ version's intrusive Node pointers, the
// linkage threads through parallel prev/next arrays indexed by cell id
// (design note 9).
type bucketList struct {
	offset int // clip_gain - offset = bucket index
	size   int

	heads [2][]int // heads[side][bucketIdx] = head cell id, or sentinelNone
	prev  []int    // prev[cellID]
	next  []int    // next[cellID]

	maxHead [2]int // cell id of the head of the highest non-empty bucket

	// clipGain reads back a cell's current CLIP gain; used only to compare
	// against the incumbent max-bucket cell when deciding whether a fresh
	// insertion should become the new maxHead (ties favor the newest
	// insertion, matching the C++ insertBucketList "clip_gain >= ..." check).
	clipGain func(cellID int) int
}

// newBucketList allocates a bucket list sized for numCells cells and a
// maximum pin count of pmax (spec: bucket array spans
// [-2*Pmax, 2*Pmax], i.e. 4*Pmax+1 slots).
func newBucketList(numCells, pmax int, clipGain func(int) int) *bucketList {
	size := 4*pmax + 1
	if size < 1 {
		size = 1
	}
	bl := &bucketList{
		offset:   -2 * pmax,
		size:     size,
		prev:     make([]int, numCells),
		next:     make([]int, numCells),
		clipGain: clipGain,
	}
	bl.heads[0] = make([]int, size)
	bl.heads[1] = make([]int, size)
	bl.reset()
	return bl
}

// reset clears every bucket chain and linkage; called at the start of
// every pass (spec §4.1 "Pass initialisation").
func (bl *bucketList) reset() {
	for side := 0; side < 2; side++ {
		for i := range bl.heads[side] {
			bl.heads[side][i] = sentinelNone
		}
		bl.maxHead[side] = sentinelNone
	}
	for i := range bl.prev {
		bl.prev[i] = sentinelNone
		bl.next[i] = sentinelNone
	}
}

func (bl *bucketList) index(clipGain int) int { return clipGain - bl.offset }

// insert prepends cellID to the front of the bucket chain for (side,
// clipGain), then updates the max-bucket head if this bucket is now the
// highest non-empty one reachable (or ties the incumbent, LIFO tie-break).
func (bl *bucketList) insert(cellID int, side Side, clipGain int) {
	idx := bl.index(clipGain)
	head := bl.heads[side][idx]
	bl.prev[cellID] = sentinelNone
	bl.next[cellID] = head
	if head != sentinelNone {
		bl.prev[head] = cellID
	}
	bl.heads[side][idx] = cellID

	cur := bl.maxHead[side]
	if cur == sentinelNone || clipGain >= bl.clipGain(cur) {
		bl.maxHead[side] = cellID
	}
}

// remove unlinks cellID from the bucket chain for (side, clipGain). If it
// was the head of the max bucket, the max pointer is recomputed by
// scanning backward from the vacated bucket toward index 0, matching the
// C++ reverse-iterator scan in Partitioner::removeBucketList.
func (bl *bucketList) remove(cellID int, side Side, clipGain int) {
	idx := bl.index(clipGain)

	if p := bl.prev[cellID]; p != sentinelNone {
		bl.next[p] = bl.next[cellID]
	} else {
		bl.heads[side][idx] = bl.next[cellID]
		if bl.maxHead[side] == cellID {
			bl.maxHead[side] = sentinelNone
			for i := idx; i >= 0; i-- {
				if bl.heads[side][i] != sentinelNone {
					bl.maxHead[side] = bl.heads[side][i]
					break
				}
			}
		}
	}
	if n := bl.next[cellID]; n != sentinelNone {
		bl.prev[n] = bl.prev[cellID]
	}
	bl.prev[cellID] = sentinelNone
	bl.next[cellID] = sentinelNone
}
