package mapping

// palette maps normalized #rrggbb values to utility color names. The
// 500 shades of the default palette plus black and white cover the
// colors component stylesheets actually use; unmatched colors stay as
// original CSS rather than guessing a nearest shade.
var palette = map[string]string{
	"#000000": "black",
	"#ffffff": "white",
	"#f8fafc": "slate-50",
	"#64748b": "slate-500",
	"#0f172a": "slate-900",
	"#f9fafb": "gray-50",
	"#6b7280": "gray-500",
	"#111827": "gray-900",
	"#ef4444": "red-500",
	"#b91c1c": "red-700",
	"#f97316": "orange-500",
	"#f59e0b": "amber-500",
	"#eab308": "yellow-500",
	"#84cc16": "lime-500",
	"#22c55e": "green-500",
	"#15803d": "green-700",
	"#10b981": "emerald-500",
	"#14b8a6": "teal-500",
	"#06b6d4": "cyan-500",
	"#0ea5e9": "sky-500",
	"#3b82f6": "blue-500",
	"#1d4ed8": "blue-700",
	"#6366f1": "indigo-500",
	"#8b5cf6": "violet-500",
	"#a855f7": "purple-500",
	"#d946ef": "fuchsia-500",
	"#ec4899": "pink-500",
	"#f43f5e": "rose-500",
}

// paletteName looks up the utility color name for a normalized hex value
func paletteName(hex string) (string, bool) {
	name, ok := palette[hex]
	return name, ok
}
