package styles

import "strings"

const logoArt = `  $$$$$$\                          $$\ $$\
$$  __$$\                         $$ |\__|
$$ /  \__|$$$$$$\$$$$\   $$$$$$$\ $$ |$$\
$$$$\     $$  _$$  _$$\ $$  _____|$$ |$$ |
$$  _|    $$ / $$ / $$ |$$ /      $$ |$$ |
$$ |      $$ | $$ | $$ |$$ |      $$ |$$ |
$$ |      $$ | $$ | $$ |\$$$$$$$\ $$ |$$ |
\__|      \__| \__| \__| \_______|\__|\__|`

// Logo renders the ASCII logo with the theme gradient on every line.
func Logo() string {
	t := T()
	lines := strings.Split(logoArt, "\n")
	for i, line := range lines {
		lines[i] = ApplyBoldGradient(line, t.Primary, t.Secondary)
	}
	return strings.Join(lines, "\n")
}

// LogoWidth is the width of the widest logo line.
func LogoWidth() int {
	w := 0
	for _, line := range strings.Split(logoArt, "\n") {
		w = max(w, len(line))
	}
	return w
}
