package visibility

import (
	"furniture-studio/internal/renderer/projection"
	"furniture-studio/internal/studio/models"
)

// ============================================================
// Room shell
// ============================================================

// WallHeightScale делает стены ниже, чтобы не закрывать мебель.
const WallHeightScale = 0.7

type Wall string

const (
	LeftWall  Wall = "left"
	RightWall Wall = "right"
	BackWall  Wall = "back"
)

// wallCorners перечисляет углы стен в нумерации Box (0-3 пол, 4-7 потолок).
var wallCorners = map[Wall][4]int{
	LeftWall:  {0, 3, 7, 4},
	RightWall: {1, 2, 6, 5},
	BackWall:  {0, 1, 5, 4},
}

// Shell хранит спроецированную коробку комнаты, центрированная на экране.
type Shell struct {
	Box
}

// ProjectShell проецирует пол и потолок комнаты с текущим масштабом.
func ProjectShell(p *projection.Projector, room *models.Room, zoom float64) Shell {
	w := room.Width * zoom
	l := room.Length * zoom
	h := room.Height * zoom * WallHeightScale
	return Shell{Box: ProjectBox(p, -w/2, -l/2, w, l, h)}
}

// Floor возвращает полигон пола.
func (s Shell) Floor() []projection.Point {
	return s.pick([4]int{0, 1, 2, 3})
}

// Wall возвращает полигон стены.
func (s Shell) Wall(w Wall) []projection.Point {
	idx, ok := wallCorners[w]
	if !ok {
		return nil
	}
	return s.pick(idx)
}

// VisibleWalls перечисляет стены в порядке отрисовки: левая, правая, задняя.
func (ws WallSet) VisibleWalls() []Wall {
	out := make([]Wall, 0, 3)
	if ws.Left {
		out = append(out, LeftWall)
	}
	if ws.Right {
		out = append(out, RightWall)
	}
	if ws.Back {
		out = append(out, BackWall)
	}
	return out
}
