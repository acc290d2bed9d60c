package schema

import "strings"

// padPrefix starts the names of generated padding members.
const padPrefix = "_pad"

// cppReserved holds C++ keywords and alternative tokens, plus the names the
// generated header relies on from <stddef.h> and <stdint.h>. Field names are
// emitted verbatim as C++ members, so none of these may be used.
var cppReserved = toSet(`
alignas alignof and and_eq asm auto bitand bitor bool break case catch char
char8_t char16_t char32_t class co_await co_return co_yield compl concept
const consteval constexpr constinit const_cast continue decltype default
delete do double dynamic_cast else enum explicit export extern false float
for friend goto if inline int long mutable namespace new noexcept not not_eq
nullptr operator or or_eq private protected public register reinterpret_cast
requires return short signed sizeof static static_assert static_cast struct
switch template this thread_local throw true try typedef typeid typename
union unsigned using virtual void volatile wchar_t while xor xor_eq
NULL offsetof size_t int8_t int16_t int32_t int64_t uint8_t uint16_t
uint32_t uint64_t
`)

func toSet(words string) map[string]bool {
	out := map[string]bool{}
	for _, w := range strings.Fields(words) {
		out[w] = true
	}
	return out
}
