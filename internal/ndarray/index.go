package ndarray

import "fmt"

type keyKind int

const (
	keyScalar keyKind = iota
	keyRange
)

// Key is one entry of a multi-dimensional index: either a scalar index, which consumes its
// dimension, or a range (start, optional stop, step), which keeps it.
type Key struct {
	kind    keyKind
	start   int
	stop    int
	hasStop bool
	step    int
}

// Scalar selects a single position along a dimension.
func Scalar(i int) Key {
	return Key{kind: keyScalar, start: i}
}

// Range selects [start, stop) with the given step.
func Range(start, stop, step int) Key {
	return Key{kind: keyRange, start: start, stop: stop, hasStop: true, step: step}
}

// RangeFrom selects from start to the end of the dimension with the given step.
func RangeFrom(start, step int) Key {
	return Key{kind: keyRange, start: start, step: step}
}

// All selects a whole dimension.
func All() Key {
	return RangeFrom(0, 1)
}

// IsRange reports whether the key keeps its dimension.
func (k Key) IsRange() bool {
	return k.kind == keyRange
}

// String returns the key in numpy slice notation.
func (k Key) String() string {
	if k.kind == keyScalar {
		return fmt.Sprint(k.start)
	}
	if k.hasStop {
		return fmt.Sprintf("%d:%d:%d", k.start, k.stop, k.step)
	}
	return fmt.Sprintf("%d::%d", k.start, k.step)
}

// Element is the result of a read: a scalar when the key held only scalar entries,
// otherwise a view.
type Element struct {
	value float64
	view  *NDArray
}

// IsView reports whether the read produced a view.
func (e Element) IsView() bool {
	return e.view != nil
}

// Value returns the scalar; zero for views.
func (e Element) Value() float64 {
	return e.value
}

// View returns the view; nil for scalars.
func (e Element) View() *NDArray {
	return e.view
}

// selection is a resolved key.
type selection struct {
	shift   int
	shape   Shape
	strides []int
	isView  bool
}

func (a *NDArray) resolve(keys []Key) (selection, error) {
	if len(keys) != len(a.shape) {
		return selection{}, fmt.Errorf("%d key entries for %d dimensions: %w", len(keys), len(a.shape), ErrInvalidKey)
	}

	sel := selection{shift: a.shift()}
	for dim, k := range keys {
		size := a.shape[dim]
		switch k.kind {
		case keyScalar:
			if k.start < 0 || k.start >= size {
				return selection{}, fmt.Errorf("index %d for dimension %d of size %d: %w", k.start, dim, size, ErrIndexOutOfRange)
			}
			sel.shift += k.start * a.skips[dim]
		case keyRange:
			if k.step <= 0 {
				return selection{}, fmt.Errorf("step %d for dimension %d: %w", k.step, dim, ErrInvalidKey)
			}
			if k.start < 0 || k.start >= size {
				return selection{}, fmt.Errorf("range start %d for dimension %d of size %d: %w", k.start, dim, size, ErrIndexOutOfRange)
			}
			stop := size
			if k.hasStop {
				if k.stop <= k.start || k.stop > size {
					return selection{}, fmt.Errorf("range %d:%d for dimension %d of size %d: %w", k.start, k.stop, dim, size, ErrIndexOutOfRange)
				}
				stop = k.stop
			}
			sel.isView = true
			sel.shift += k.start * a.skips[dim]
			sel.shape = append(sel.shape, (stop-k.start+k.step-1)/k.step)
			sel.strides = append(sel.strides, k.step*a.strides[dim])
		}
	}
	return sel, nil
}

// Get reads with a multi-dimensional key holding one entry per dimension.
// A key of scalars only yields the element; a key with at least one range yields a view.
//
// Example:
//
//	e, _ := a.Get(ndarray.Scalar(1), ndarray.Scalar(2)) // e.Value() == a[1, 2]
//	e, _ = a.Get(ndarray.Range(0, 2, 1), ndarray.All()) // e.View() is a[0:2, :]
func (a *NDArray) Get(keys ...Key) (Element, error) {
	sel, err := a.resolve(keys)
	if err != nil {
		return Element{}, fmt.Errorf("get: %w", err)
	}
	if sel.isView {
		return Element{view: a.view(sel.shape, sel.shift*a.dtype.Size(), sel.strides)}, nil
	}
	return Element{value: a.buffer.loader()(sel.shift)}, nil
}

// At returns the element at the given indices.
func (a *NDArray) At(indices ...int) (float64, error) {
	e, err := a.Get(scalarKeys(indices)...)
	if err != nil {
		return 0, err
	}
	return e.value, nil
}

// Slice returns the view selected by keys. At least one entry must be a range.
func (a *NDArray) Slice(keys ...Key) (*NDArray, error) {
	e, err := a.Get(keys...)
	if err != nil {
		return nil, err
	}
	if !e.IsView() {
		return nil, fmt.Errorf("slice: key %v selects a single element: %w", keys, ErrInvalidKey)
	}
	return e.view, nil
}

// Set writes value at a scalar key, or into every element of the view selected by a key
// containing a range.
func (a *NDArray) Set(value float64, keys ...Key) error {
	sel, err := a.resolve(keys)
	if err != nil {
		return fmt.Errorf("set: %w", err)
	}
	store := a.buffer.storer()
	if !sel.isView {
		store(sel.shift, value)
		return nil
	}

	target := a.view(sel.shape, sel.shift*a.dtype.Size(), sel.strides)
	defer target.Release()
	walk(target.shape, []*NDArray{target}, func(_ int, sh []int) {
		store(sh[0], value)
	})
	return nil
}

// SetAt writes value at the given indices.
func (a *NDArray) SetAt(value float64, indices ...int) error {
	return a.Set(value, scalarKeys(indices)...)
}

// SetArray copies src element by element into the view selected by keys.
// The key must contain a range and the view's shape must equal src's shape.
func (a *NDArray) SetArray(src *NDArray, keys ...Key) error {
	sel, err := a.resolve(keys)
	if err != nil {
		return fmt.Errorf("set: %w", err)
	}
	if !sel.isView {
		return fmt.Errorf("set: key %v selects a single element: %w", keys, ErrInvalidKey)
	}
	if !sel.shape.Equal(src.shape) {
		return fmt.Errorf("set: target %v, source %v: %w", sel.shape, src.shape, ErrShapeMismatch)
	}

	target := a.view(sel.shape, sel.shift*a.dtype.Size(), sel.strides)
	defer target.Release()
	copyInto(target, src)
	return nil
}

func scalarKeys(indices []int) []Key {
	keys := make([]Key, len(indices))
	for i, idx := range indices {
		keys[i] = Scalar(idx)
	}
	return keys
}
