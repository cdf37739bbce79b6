package model

// Tuple2 is a pair of results.
type Tuple2[A, B any] struct {
	V1 A
	V2 B
}

// Tuple3 is a triple of results.
type Tuple3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}
