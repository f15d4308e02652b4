package value

// Retain and Release implement glorp's manual reference counting for the
// two heap-allocated, share-by-reference value kinds (List and Function;
// Environment frames are retained/released directly through the Env
// interface by their owners). Scalars (Null, Unit, Char, Int, Float) and
// LValue are copied or recomputed rather than shared, so they are no-ops
// here.
func Retain(v Value) {
	switch x := v.(type) {
	case *List:
		x.retain()
	case *Function:
		x.retain()
	}
}

func Release(v Value) {
	switch x := v.(type) {
	case *List:
		x.release()
	case *Function:
		x.release()
	}
}
