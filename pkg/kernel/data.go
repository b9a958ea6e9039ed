package kernel

import (
	"bytes"
	"strconv"

	"github.com/yndnr/kernbench-go/pkg/lcg"
)

const (
	textIterations = 100
	textRecords    = 1000
	textCapacity   = 50000
	textDelimiter  = ':'

	quickSortSize = 10000
	quickSortMask = 0x3F

	bubbleSortSize = 1000
	bubbleSortSeed = 999
)

// JSONBuild builds the 1000-record text payload 100 times into one reused
// buffer and counts ':' after each build.
func JSONBuild() {
	var buf bytes.Buffer
	buf.Grow(textCapacity)
	for i := 0; i < textIterations; i++ {
		buf.Reset()
		writeRecords(&buf)
		_ = bytes.Count(buf.Bytes(), []byte{textDelimiter})
	}
}

// TextPayload returns the payload JSONBuild builds on every iteration.
func TextPayload() []byte {
	var buf bytes.Buffer
	buf.Grow(textCapacity)
	writeRecords(&buf)
	return buf.Bytes()
}

// writeRecords appends {"items":[{"name":"Item0","value":0},...]}.
func writeRecords(buf *bytes.Buffer) {
	buf.WriteString(`{"items":[`)
	for i := 0; i < textRecords; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"name":"Item`)
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(i), 10))
		buf.WriteString(`","value":`)
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(i), 10))
		buf.WriteByte('}')
	}
	buf.WriteString("]}")
}

// QuickSort sorts i XOR 0x3F for i in 0..10000 with a recursive Lomuto
// quicksort.
func QuickSort() {
	_ = QuickSorted()
}

// QuickSorted returns the array sorted by QuickSort.
func QuickSorted() []int32 {
	arr := QuickSortInput()
	quickSort(arr, 0, int32(len(arr))-1)
	return arr
}

// QuickSortInput returns the unsorted quicksort input.
func QuickSortInput() []int32 {
	arr := make([]int32, quickSortSize)
	for i := range arr {
		arr[i] = int32(i) ^ quickSortMask
	}
	return arr
}

func quickSort(arr []int32, low, high int32) {
	if low < high {
		p := partition(arr, low, high)
		quickSort(arr, low, p-1)
		quickSort(arr, p+1, high)
	}
}

// partition uses the last element as pivot.
func partition(arr []int32, low, high int32) int32 {
	pivot := arr[high]
	i := low - 1
	for j := low; j < high; j++ {
		if arr[j] <= pivot {
			i++
			arr[i], arr[j] = arr[j], arr[i]
		}
	}
	arr[i+1], arr[high] = arr[high], arr[i+1]
	return i + 1
}

// BubbleSort sorts 1000 draws from seed 999 with adjacent swaps.
func BubbleSort() {
	_ = BubbleSorted()
}

// BubbleSorted returns the array sorted by BubbleSort.
func BubbleSorted() []float64 {
	arr := BubbleSortInput()
	n := len(arr)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if arr[j] > arr[j+1] {
				arr[j], arr[j+1] = arr[j+1], arr[j]
			}
		}
	}
	return arr
}

// BubbleSortInput returns the unsorted bubble sort input.
func BubbleSortInput() []float64 {
	rng := lcg.New(bubbleSortSeed)
	arr := make([]float64, bubbleSortSize)
	for i := range arr {
		arr[i] = rng.Float64()
	}
	return arr
}
