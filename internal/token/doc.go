// Package token defines the template token model.
// Invariants:
//   - A Token is a span [Start, Start+Length) over the original template text;
//     it never copies the text.
//   - Kind is derived from Traits: no traits means Text, the Comment bit means
//     Comment, anything else is Code.
//   - A Code token is at least six bytes long ("{% " + content + " %}").
//   - Expression and Block are mutually exclusive and absent on comments;
//     NeedsSemicolon only accompanies Block.
package token
