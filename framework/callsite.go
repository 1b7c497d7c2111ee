package framework

import (
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

const maxCallDepth = 64

const autogeneratedFile = "<autogenerated>"

// callFrame is a stack frame described by the type that declares its function.
type callFrame struct {
	pkgPath  string
	receiver string // empty for plain functions
	function string // method or function name; closures are folded into their enclosing function
	file     string
	line     int
}

// callers returns the logical frames above the function that called it, innermost first.
func callers(skip int) []callFrame {
	pcs := make([]uintptr, maxCallDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pcs[:n])
	var ret []callFrame
	for {
		f, more := frames.Next()
		ret = append(ret, parseFrame(f))
		if !more {
			break
		}
	}
	return ret
}

func parseFrame(f runtime.Frame) callFrame {
	cf := parseFuncName(f.Function)
	cf.file = f.File
	cf.line = f.Line
	return cf
}

// parseFuncName splits a symbol such as "example.com/pkg.(*Type).Method.func1" into its
// package path, receiver type and function name.
func parseFuncName(name string) callFrame {
	var cf callFrame
	lastSlash := strings.LastIndex(name, "/")
	dot := strings.Index(name[lastSlash+1:], ".")
	if dot < 0 {
		cf.function = name
		return cf
	}
	dot += lastSlash + 1
	cf.pkgPath = strings.ReplaceAll(name[:dot], "%2e", ".")
	rest := name[dot+1:]

	if strings.HasPrefix(rest, "(") {
		end := strings.Index(rest, ")")
		if end < 0 {
			cf.function = rest
			return cf
		}
		cf.receiver = stripTypeArgs(strings.TrimPrefix(rest[1:end], "*"))
		cf.function = firstSegment(strings.TrimPrefix(rest[end+1:], "."))
		return cf
	}

	segments := strings.SplitN(stripBracketed(rest), ".", 3)
	if len(segments) >= 2 && !isClosureSegment(segments[1]) {
		cf.receiver = stripTypeArgs(segments[0])
		cf.function = segments[1]
		return cf
	}
	cf.function = segments[0]
	return cf
}

func firstSegment(s string) string {
	if i := strings.Index(s, "."); i >= 0 {
		return s[:i]
	}
	return s
}

func stripTypeArgs(s string) string {
	if i := strings.Index(s, "["); i >= 0 {
		return s[:i]
	}
	return s
}

// stripBracketed removes type argument lists, which may themselves contain dots.
func stripBracketed(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '[':
			depth++
		case r == ']' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isClosureSegment(s string) bool {
	for _, prefix := range []string{"func", "gowrap", "deferwrap"} {
		if strings.HasPrefix(s, prefix) {
			if _, err := strconv.Atoi(s[len(prefix):]); err == nil {
				return true
			}
		}
	}
	return false
}

// pkgName is the package qualifier used in labels: the last element of the import path.
func (f callFrame) pkgName() string {
	return f.pkgPath[strings.LastIndex(f.pkgPath, "/")+1:]
}

func (f callFrame) typeKey() string {
	if f.receiver == "" {
		return ""
	}
	return f.pkgPath + "." + f.receiver
}

func (f callFrame) qualifiedName() string {
	if f.receiver == "" {
		return f.pkgName() + "." + f.function + "()"
	}
	return f.pkgName() + "." + f.receiver + "::" + f.function + "()"
}

func (f callFrame) position() string {
	return filepath.Base(f.file) + ":" + strconv.Itoa(f.line)
}

// typeSet holds the declaring types whose frames are never used for attribution.
type typeSet map[string]struct{}

func newTypeSet(samples ...interface{}) typeSet {
	set := make(typeSet)
	set.add(Base{})
	for _, s := range samples {
		set.add(s)
	}
	return set
}

func (s typeSet) add(sample interface{}) {
	t := reflect.TypeOf(sample)
	if t == nil {
		return
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return
	}
	s[t.PkgPath()+"."+stripTypeArgs(t.Name())] = struct{}{}
}

func (s typeSet) skips(f callFrame) bool {
	if f.file == autogeneratedFile {
		return true
	}
	_, found := s[f.typeKey()]
	return found
}

// attribute picks the frame that called into the excluded types, and the frame whose
// name should appear in the label. They differ when a test method reached the call
// site through a helper.
func (s typeSet) attribute(frames []callFrame) (site, named callFrame, ok bool) {
	for i, f := range frames {
		if s.skips(f) {
			continue
		}
		site, named = f, f
		if !strings.HasPrefix(f.function, TestMethodPrefix) {
			for _, outer := range frames[i+1:] {
				if outer.receiver != "" && !s.skips(outer) && strings.HasPrefix(outer.function, TestMethodPrefix) {
					named = outer
					break
				}
			}
		}
		return site, named, true
	}
	return callFrame{}, callFrame{}, false
}

// label builds "<pkg>.<Type>::<Method>() // <file>:<line> - <message>".
func (s typeSet) label(frames []callFrame, message string) string {
	var b strings.Builder
	if site, named, ok := s.attribute(frames); ok {
		b.WriteString(named.qualifiedName())
		b.WriteString(" // ")
		b.WriteString(site.position())
	}
	if message != "" {
		if b.Len() > 0 {
			b.WriteString(" - ")
		}
		b.WriteString(message)
	}
	return b.String()
}
