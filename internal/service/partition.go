package service

// WorkRange is a half-open index interval [Start, End) over the input coordinates.
type WorkRange struct {
	Start int
	End   int
}

// Len returns the number of items in the range.
func (r WorkRange) Len() int { return r.End - r.Start }

// Partition splits items into exactly tasks contiguous ranges. Every range holds
// items/tasks entries except the last one, which also takes the remainder.
// With more tasks than items the leading ranges are empty.
func Partition(items, tasks int) ([]WorkRange, error) {
	if tasks <= 0 {
		return nil, &PartitionError{Tasks: tasks}
	}

	base := items / tasks
	remainder := items - base*tasks

	ranges := make([]WorkRange, tasks)
	start := 0
	for i := range ranges {
		size := base
		if i == tasks-1 {
			size += remainder
		}
		ranges[i] = WorkRange{Start: start, End: start + size}
		start += size
	}

	return ranges, nil
}
