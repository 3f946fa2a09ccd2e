// Package lua runs refresh scripts written in Lua.
//
// A refresh script defines a global function refresh() that returns the
// new pages as an array of strings, or raises an error:
//
//	function refresh()
//	  local pages = {}
//	  for i = 1, 3 do
//	    pages[#pages + 1] = "generated page " .. i
//	  end
//	  return pages
//	end
//
// Every Load runs the script in a fresh interpreter with only the base,
// table, string and math libraries open. The io, os, debug and package
// libraries are not available. The script can report progress with
// tactile.log(message), which writes to the application log.
//
// gopher-lua states are not goroutine-safe; a Refresher never shares a
// state between calls, so concurrent Loads are safe.
package lua
