package ethqr

// Tag is a single ASCII TLV record: a two-digit ID, a two-digit decimal
// length and the value bytes. Values may themselves be packed tags.
type Tag struct {
	ID    string
	Value string
}

// NewTag returns a tag with the given ID and value.
func NewTag(id, value string) Tag {
	return Tag{ID: id, Value: value}
}

// Len returns the byte length of the value.
func (t Tag) Len() int {
	return len(t.Value)
}

// Encode formats the tag as ID + zero-padded length + value. The ID is not
// checked and lengths above 99 are written with all their digits; PackTags
// is the checked variant.
func (t Tag) Encode() string {
	return string(t.appendTo(make([]byte, 0, len(t.ID)+2+len(t.Value))))
}

func (t Tag) String() string {
	return t.Encode()
}

func (t Tag) appendTo(dst []byte) []byte {
	dst = append(dst, t.ID...)
	dst = appendLen2(dst, len(t.Value))
	return append(dst, t.Value...)
}

// PackTags concatenates the encodings of tags in order. A value longer than
// the two-digit length field can express is rejected with a *FieldError
// naming the tag.
func PackTags(tags []Tag) (string, error) {
	return withPayloadBuf(func(buf []byte) ([]byte, error) {
		return appendTags(buf, tags)
	})
}

func appendTags(dst []byte, tags []Tag) ([]byte, error) {
	for _, t := range tags {
		if len(t.Value) > MaxTagValueLen {
			return dst, tooLong(tagName(t.ID), len(t.Value), MaxTagValueLen)
		}
		dst = t.appendTo(dst)
	}
	return dst, nil
}
