/*
Package query turns a Lucene/Solr style query string into an ordered list of
field/term records and renders such a list back into a query string.

# Overview

Processing happens in three steps, each feeding the next:

 1. Scan splits the raw string into chunks (field names, colons, quoted
    strings, parenthesised groups, ranges, regular expressions, bare words
    and whitespace). The concatenation of all chunk texts is the input.

 2. Deparse groups the chunks into TermRecord values. A field chunk is
    attached to the term chunk that follows it; every other term chunk
    becomes a record without a field.

 3. Assemble renders records back into a single query string, and
    AddToQuery uses Deparse and Assemble to inject an extra fragment into
    every term of a given field.

Operators such as AND, OR, NOT or a leading '-' are not interpreted. They
come out of Deparse as ordinary field-less records and are carried through
unchanged. Parenthesised groups are kept as opaque term text and are never
decomposed.

# Chunk Kinds

  - ChunkField: a name immediately followed by ':' (whitespace before the
    colon is allowed), e.g. "author" in "author: Meier"

  - ChunkColon: the ':' separating a field from its term

  - ChunkQuoted: a phrase including both quotes, e.g. "\"open access\""

  - ChunkParenGroup: a balanced group including the outer parentheses,
    e.g. "(water OR (fire AND ice))"

  - ChunkRange: an inclusive or exclusive range, e.g. "[2000 TO 2010}"

  - ChunkRegex: a regular expression term, e.g. "/joh?n(ath[oa]n)/"

  - ChunkWord: anything else up to whitespace or a delimiter

  - ChunkWhitespace: a run of ASCII whitespace

A backslash escapes the byte that follows it everywhere: "a\:b" is a single
word and `"say \"hi\""` a single quoted string.

# Usage Example

	records, err := query.Deparse(`author: Meier tags:(water OR fire)`)
	if err != nil {
		return err
	}
	records[0].Term = "(" + records[0].Term + " OR Mueller)"
	q := query.Assemble(records)
	// q == "author : (Meier OR Mueller) tags : (water OR fire)"

	q, err = query.AddToQuery(`tags:(water OR fire)`, "AND caffee", "tags")
	// q == "tags : ((water OR fire) AND caffee)"

# Errors

Scan and Deparse fail with a *SyntaxError wrapping ErrUnbalancedDelimiter
when a quote, parenthesis, range or regular expression is never closed, and
Deparse fails with ErrDanglingField when a field name is followed by another
field name or by the end of the input. No partial result is returned.

All functions in this package are pure and safe for concurrent use.
*/
package query
