package render

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxLabelLen = 60

type scriptParams struct {
	Prompt      string
	ProjectRoot string
	MediaDir    string
	OutputDir   string
	QualityTag  string
	PixelWidth  int
	PixelHeight int
}

// escapePrompt makes a prompt safe to embed inside a triple-quoted Python
// string: backslashes doubled, double quotes escaped, newlines turned into
// escaped literals.
func escapePrompt(prompt string) string {
	escaped := strings.ReplaceAll(prompt, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	return escaped
}

// sceneLabel derives a short human-readable label from the prompt, used in
// the script header and in logs.
func sceneLabel(prompt string) string {
	label := strings.Join(strings.Fields(prompt), " ")
	if len(label) > maxLabelLen {
		label = strings.TrimSpace(label[:maxLabelLen])
	}
	if label == "" {
		return "Untitled Scene"
	}
	return cases.Title(language.English).String(label)
}

// buildScript synthesizes the Python program that renders one scene: build
// the scene from the prompt, configure output, render, relocate the produced
// video into the job directory and clean up renderer scratch directories.
func buildScript(p scriptParams) string {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "# %s\n", sceneLabel(p.Prompt))
	sb.WriteString("import os\n")
	sb.WriteString("import shutil\n")
	sb.WriteString("import sys\n\n")

	fmt.Fprintf(sb, "project_root = %q\n", p.ProjectRoot)
	sb.WriteString("sys.path.append(project_root)\n\n")

	sb.WriteString("from animation_generator import create_animation\n")
	sb.WriteString("from manim import *\n\n")

	fmt.Fprintf(sb, "scene_class = create_animation(\"\"\"%s\"\"\")\n", escapePrompt(p.Prompt))
	sb.WriteString("scene = scene_class()\n\n")

	sb.WriteString("config.output_file = \"AnimationScene\"\n")
	fmt.Fprintf(sb, "config.media_dir = %q\n", p.MediaDir)
	sb.WriteString("config.quality = \"medium_quality\"\n")
	sb.WriteString("config.frame_rate = 30\n")
	fmt.Fprintf(sb, "config.pixel_height = %d\n", p.PixelHeight)
	fmt.Fprintf(sb, "config.pixel_width = %d\n\n", p.PixelWidth)

	sb.WriteString("scene.render()\n\n")

	fmt.Fprintf(sb, "render_dir = %q\n", path.Join(p.MediaDir, "videos", p.QualityTag))
	fmt.Fprintf(sb, "output_dir = %q\n", p.OutputDir)
	sb.WriteString("os.makedirs(output_dir, exist_ok=True)\n\n")

	sb.WriteString("if os.path.exists(render_dir):\n")
	sb.WriteString("    for name in os.listdir(render_dir):\n")
	sb.WriteString("        if name.endswith(\".mp4\"):\n")
	sb.WriteString("            src = os.path.join(render_dir, name)\n")
	sb.WriteString("            dst = os.path.join(output_dir, \"AnimationScene.mp4\")\n")
	sb.WriteString("            if os.path.exists(dst):\n")
	sb.WriteString("                os.remove(dst)\n")
	sb.WriteString("            shutil.move(src, dst)\n")
	sb.WriteString("            break\n\n")

	sb.WriteString("scratch_dirs = [\n")
	fmt.Fprintf(sb, "    os.path.join(render_dir, \"partial_movie_files\"),\n")
	fmt.Fprintf(sb, "    %q,\n", path.Join(p.MediaDir, "images"))
	fmt.Fprintf(sb, "    %q,\n", path.Join(p.MediaDir, "texts"))
	sb.WriteString("]\n")
	sb.WriteString("for scratch in scratch_dirs:\n")
	sb.WriteString("    if os.path.exists(scratch):\n")
	sb.WriteString("        shutil.rmtree(scratch)\n")

	return sb.String()
}
