package rcbor

// Writer is a prepend-only (reverse) CBOR writer. It emits bytes from
// the tail of a fixed, caller-owned buffer toward the head, so that a
// container's length header can be prepended once the container's
// contents already exist and its item count is known, without a
// second pass over the buffer.
//
// The most important contract of Writer: because it writes backward,
// callers must issue Prepend calls in the reverse of the desired wire
// order between a matching Open and Wrap call. The first element of
// the on-wire array is the *last* PrependXxx call before WrapArray.
//
// Once any operation would overflow the buffer, underflow the nesting
// stack, or close a map with an odd item count, Writer latches into a
// poisoned state: every subsequent call becomes a silent no-op, and
// Stop reports the cause. Writer never logs or panics; it allocates
// only in NewWriter and in PrependText's string-to-bytes conversion.
type Writer struct {
	buf        []byte
	cursor     int // index of the first already-written byte
	free       int // bytes available before cursor
	maxNesting int
	depth      int   // maxNesting means "no container open"
	stack      []int // item_count per open container, indexed by depth
	poisoned   bool
	cause      error
}

// WriterOption configures a Writer at construction time.
type WriterOption func(*Writer)

// WithMaxNesting overrides the default maximum simultaneously-open
// container depth (spec.md's MAX_NESTING, default 8).
func WithMaxNesting(n int) WriterOption {
	return func(w *Writer) {
		w.maxNesting = n
	}
}

// NewWriter takes ownership of buffer for the life of the Writer
// session: the cursor starts one past the end and moves toward index
// 0 as items are prepended.
func NewWriter(buffer []byte, opts ...WriterOption) *Writer {
	w := &Writer{
		buf:        buffer,
		cursor:     len(buffer),
		free:       len(buffer),
		maxNesting: 8,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.depth = w.maxNesting
	w.stack = make([]int, w.maxNesting)
	return w
}

// Poisoned reports whether the writer has latched into its error
// state.
func (w *Writer) Poisoned() bool {
	return w.poisoned
}

// Err returns the cause of poisoning, or nil if the writer has not
// poisoned.
func (w *Writer) Err() error {
	if !w.poisoned {
		return nil
	}
	return &ContainerError{Err: w.cause, Depth: w.Depth()}
}

// Depth returns the current nesting depth: the number of currently
// open, not-yet-wrapped containers.
func (w *Writer) Depth() int {
	return w.maxNesting - w.depth
}

// Stop finishes the writer session. It returns the valid output slice
// (borrowed from the caller's buffer) iff every opened container has
// been wrapped and the writer never poisoned; otherwise it returns nil
// and an error describing why.
func (w *Writer) Stop() ([]byte, error) {
	if w.poisoned {
		return nil, w.Err()
	}
	if w.depth != w.maxNesting {
		return nil, ErrUnfinishedContainer
	}
	return w.buf[w.cursor:], nil
}

func (w *Writer) poison(cause error) {
	if w.poisoned {
		return
	}
	w.poisoned = true
	w.cause = cause
}

// increment affects only the innermost open container's item count.
// At the top level (depth == maxNesting) it is a no-op: the top level
// may hold one item or a sequence of items per the caller's own
// framing.
func (w *Writer) increment() {
	if w.depth == w.maxNesting {
		return
	}
	w.stack[w.depth]++
}

// prependRaw copies data into the freshly exposed slot just before the
// cursor, without touching any container counter.
func (w *Writer) prependRaw(data []byte) bool {
	n := len(data)
	if n == 0 {
		return true
	}
	if w.free < n {
		w.poison(ErrBufferExhausted)
		return false
	}
	w.cursor -= n
	w.free -= n
	copy(w.buf[w.cursor:], data)
	return true
}

// prependHeader assembles and writes a CBOR initial-byte-plus-argument
// header for mt/value using the shortest size class, without touching
// any container counter. The bounds check accounts for the argument
// bytes *and* the initial byte in one comparison (free <= argLen must
// be false, i.e. free must be at least argLen+1): an off-by-one here
// is the exact failure mode spec.md §9 warns re-implementers about.
func (w *Writer) prependHeader(mt MajorType, value uint64) bool {
	sc := classifyUnsigned(value)
	argLen := argumentLength(sc)
	if w.free <= argLen {
		w.poison(ErrBufferExhausted)
		return false
	}
	w.free -= argLen
	remaining := value
	for i := 0; i < argLen; i++ {
		w.cursor--
		w.buf[w.cursor] = byte(remaining)
		remaining >>= 8
	}
	var additional byte
	if sc == SizeImmediate {
		additional = byte(value)
	} else {
		additional = byte(sc)
	}
	w.cursor--
	w.free--
	w.buf[w.cursor] = encodeInitialByte(mt, additional)
	return true
}

// prependSimple writes a single simple-value byte, without touching
// any container counter.
func (w *Writer) prependSimple(value SimpleValue) bool {
	if w.free == 0 {
		w.poison(ErrBufferExhausted)
		return false
	}
	w.cursor--
	w.free--
	w.buf[w.cursor] = byte(value)
	return true
}

// PrependUnsigned emits a major-type-0 item and increments the
// enclosing container's item count.
func (w *Writer) PrependUnsigned(v uint64) {
	if w.poisoned {
		return
	}
	if !w.prependHeader(MajorUnsigned, v) {
		return
	}
	w.increment()
}

// PrependObject prepends an opaque, already-formed CBOR fragment of
// exactly one logical item (the caller asserts this); it increments
// the enclosing counter by exactly one.
func (w *Writer) PrependObject(fragment []byte) {
	if w.poisoned {
		return
	}
	if !w.prependRaw(fragment) {
		return
	}
	w.increment()
}

// PrependData emits a major-type-2 (byte string) item: the raw bytes
// at the tail position, then a byte-string header carrying their
// length. Exactly one increment occurs for the whole item, regardless
// of nesting depth at the call site.
func (w *Writer) PrependData(data []byte) {
	if w.poisoned {
		return
	}
	if !w.prependRaw(data) {
		return
	}
	if !w.prependHeader(MajorByteString, uint64(len(data))) {
		return
	}
	w.increment()
}

// PrependText emits a major-type-3 (text string) item. The codec does
// not validate UTF-8; bytes are preserved verbatim.
func (w *Writer) PrependText(text string) {
	if w.poisoned {
		return
	}
	if !w.prependRaw([]byte(text)) {
		return
	}
	if !w.prependHeader(MajorTextString, uint64(len(text))) {
		return
	}
	w.increment()
}

// WrapData prepends a byte-string header of length n to bytes already
// placed by a previous PrependObject call, for the case where the
// caller built the inner content with its own writer session into the
// same tail region. Increments the enclosing counter by exactly one,
// matching PrependData's net effect.
func (w *Writer) WrapData(n int) {
	if w.poisoned {
		return
	}
	if !w.prependHeader(MajorByteString, uint64(n)) {
		return
	}
	w.increment()
}

// OpenArray pushes a new item-count counter and starts routing
// subsequent Prepend calls to it. It fails (poisoning the writer) if
// the nesting stack has no free slots.
func (w *Writer) OpenArray() int {
	return w.open()
}

// OpenMap pushes a new item-count counter for a map. Each key and each
// value prepended counts as one item, so a well-formed map has an even
// counter at WrapMap time.
func (w *Writer) OpenMap() int {
	return w.open()
}

func (w *Writer) open() int {
	if w.poisoned {
		return 0
	}
	if w.depth == 0 {
		w.poison(ErrNestingOverflow)
		return 0
	}
	w.depth--
	w.stack[w.depth] = 0
	return w.cursor
}

// WrapArray pops the innermost counter and prepends an array header
// carrying it as the element count. The array itself then counts as
// one item in its parent container, if any.
func (w *Writer) WrapArray() int {
	if w.poisoned {
		return 0
	}
	if w.depth == w.maxNesting {
		w.poison(ErrNestingUnderflow)
		return 0
	}
	count := w.stack[w.depth]
	if !w.prependHeader(MajorArray, uint64(count)) {
		return 0
	}
	w.depth++
	w.increment()
	return w.cursor
}

// WrapMap pops the innermost counter and prepends a map header
// carrying half the counter as the pair count; the counter must be
// even. The map itself then counts as one item in its parent
// container, if any.
func (w *Writer) WrapMap() int {
	if w.poisoned {
		return 0
	}
	if w.depth == w.maxNesting {
		w.poison(ErrNestingUnderflow)
		return 0
	}
	count := w.stack[w.depth]
	if count&1 != 0 {
		w.poison(ErrMapParity)
		return 0
	}
	if !w.prependHeader(MajorMap, uint64(count>>1)) {
		return 0
	}
	w.depth++
	w.increment()
	return w.cursor
}

// PrependNull prepends the simple value null.
func (w *Writer) PrependNull() {
	if w.poisoned {
		return
	}
	if !w.prependSimple(SimpleNull) {
		return
	}
	w.increment()
}

// PrependUndefined prepends the simple value undefined.
func (w *Writer) PrependUndefined() {
	if w.poisoned {
		return
	}
	if !w.prependSimple(SimpleUndefined) {
		return
	}
	w.increment()
}

// PrependBool prepends a boolean simple value.
func (w *Writer) PrependBool(b bool) {
	if w.poisoned {
		return
	}
	value := SimpleFalse
	if b {
		value = SimpleTrue
	}
	if !w.prependSimple(value) {
		return
	}
	w.increment()
}
