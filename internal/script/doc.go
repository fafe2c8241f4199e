// internal/script/doc.go

/*
Package script parses the game's script/config dialect into an editable,
addressable model and renders it back to text.

The parser is deliberately tolerant. A file is lexed with a total rule
set, then scanned left to right for three recognized shapes:

  - parameter calls:      Param("MeleeSlot", 5);
  - property assignments: speed = 5   |   Durability(80);
  - blocks:               Item("Sniper") { ... }

Everything else (comments, whitespace, syntax the dialect does not
know) survives verbatim as literal spans of the skeleton. Rendering is
a pure fold over that skeleton, so a SourceFile with no edits applied
reproduces its input byte for byte, and an edit disturbs nothing outside
the edited entity's own text.

Entities carry stable addresses (see package address) assigned at parse
time. Deleting an entity removes its text from the rendering but keeps
its Address reserved: occurrence indices are never recomputed during an
editing session.

Total parse failure is reserved for payloads that are not text at all,
reported as *DecodeError.
*/
package script
