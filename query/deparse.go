package query

// Deparse scans q and groups the chunks into term records, in the order
// the terms appear in q.
//
// A field name is attached to the term chunk that follows it. Whitespace and
// colons are structural and do not produce records. A field name followed by
// another field name or by the end of q fails with ErrDanglingField.
func Deparse(q string) ([]TermRecord, error) {
	chunks, err := Scan(q)
	if err != nil {
		return nil, err
	}
	return group(q, chunks)
}

// group attaches pending field names to the next term chunk.
func group(q string, chunks []Chunk) ([]TermRecord, error) {
	records := make([]TermRecord, 0, len(chunks)/2+1)

	var pending *Chunk
	for i := range chunks {
		chunk := &chunks[i]
		switch {
		case chunk.Kind == ChunkField:
			if pending != nil {
				return nil, danglingField(q, pending)
			}
			pending = chunk
		case chunk.Kind.IsTerm():
			record := TermRecord{Term: chunk.Text}
			if pending != nil {
				record.Field = pending.Text
				pending = nil
			}
			records = append(records, record)
		}
	}

	if pending != nil {
		return nil, danglingField(q, pending)
	}
	return records, nil
}

func danglingField(q string, field *Chunk) error {
	return &SyntaxError{
		Err:   ErrDanglingField,
		Pos:   field.Pos,
		Token: field.Text,
		Input: q,
	}
}

// Fields returns the distinct field names used in records, in the order
// they first appear.
func Fields(records []TermRecord) []string {
	seen := make(map[string]bool)
	var fields []string
	for _, r := range records {
		if !r.HasField() || seen[r.Field] {
			continue
		}
		seen[r.Field] = true
		fields = append(fields, r.Field)
	}
	return fields
}
