package editor

import "fmt"

// The scripts drive System Events by process name. Window ids map to the
// AXWindowNumber attribute, which matches the CGWindowID the focus call
// uses.

func listWindowsScript(cfg Config) string {
	return fmt.Sprintf(`tell application "System Events"
	set isFront to false
	if exists (first application process whose frontmost is true and bundle identifier is %q) then set isFront to true
	set output to (isFront as text)
	if exists (first application process whose bundle identifier is %q) then
		tell (first application process whose bundle identifier is %q)
			repeat with w in windows
				set wid to "0"
				try
					set wid to (value of attribute "AXWindowNumber" of w) as text
				end try
				set isMain to "false"
				try
					if value of attribute "AXMain" of w then set isMain to "true"
				end try
				set output to output & linefeed & wid & tab & isMain & tab & (name of w)
			end repeat
		end tell
	end if
	return output
end tell`, cfg.BundleID, cfg.BundleID, cfg.BundleID)
}

func focusWindowScript(cfg Config, windowID int) string {
	return fmt.Sprintf(`tell application "System Events"
	tell (first application process whose bundle identifier is %q)
		set frontmost to true
		repeat with w in windows
			try
				if (value of attribute "AXWindowNumber" of w) is %d then
					perform action "AXRaise" of w
					exit repeat
				end if
			end try
		end repeat
	end tell
end tell`, cfg.BundleID, windowID)
}

func openWindowScript(cfg Config) string {
	return fmt.Sprintf(`tell application "System Events"
	tell (first application process whose bundle identifier is %q)
		set frontmost to true
		keystroke "n" using {command down, shift down}
	end tell
end tell`, cfg.BundleID)
}

func closeWindowScript(cfg Config, title string) string {
	return fmt.Sprintf(`tell application "System Events"
	tell (first application process whose bundle identifier is %q)
		repeat with w in windows
			if (name of w) is %q then
				perform action "AXPress" of (first button of w whose subrole is "AXCloseButton")
				exit repeat
			end if
		end repeat
	end tell
end tell`, cfg.BundleID, title)
}
