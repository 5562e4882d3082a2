package main

import (
	"time"

	"github.com/jcorbin/primeforth/internal/num"
)

// Host provides graphics, keyboard, time, and randomness to the engine.
// Drawing takes a layer, and colors are 0xRRGGBB integers. PollKey returns
// -1 when no key is pending.
type Host interface {
	Pixel(layer, x, y, color int)
	Line(layer, x1, y1, x2, y2, color int)
	Rect(layer, x, y, w, h, color int)
	FillRect(layer, x, y, w, h, edge, fill int)
	Circle(layer, x, y, r, color int)
	GetPixel(x, y int) int
	Clear(background int)
	Show() error

	PollKey() int
	LastKey() int
	Ticks() int
	Sleep(d time.Duration)
	Random(bound int) int
}

const (
	defaultColor      = 0x0000ff
	defaultBackground = 0xffffff

	keyPollInterval = time.Millisecond
)

// scaled maps a coordinate onto a grid of size by size cells.
func scaled(c, size int) int {
	if c > 0 {
		return c*size + 1
	}
	return c
}

func hostOps() []*op {
	var ops []*op
	add := func(name string, fn func(vm *VM)) { ops = append(ops, simpleOp(name, fn)) }

	add("pixon", func(vm *VM) {
		y, x := vm.popInt(), vm.popInt()
		vm.host.Pixel(0, x, y, vm.color)
	})
	add("pixon2", func(vm *VM) {
		y, x := scaled(vm.popInt(), 2), scaled(vm.popInt(), 2)
		for _, d := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			vm.host.Pixel(0, x+d[0], y+d[1], vm.color)
		}
	})
	add("pixon4", func(vm *VM) {
		y, x := scaled(vm.popInt(), 4), scaled(vm.popInt(), 4)
		vm.host.FillRect(0, x, y, 4, 4, vm.color, vm.color)
	})
	add("getpix", func(vm *VM) {
		y, x := vm.popInt(), vm.popInt()
		vm.push(num.Int(vm.host.GetPixel(x, y)))
	})
	add("getpix2", func(vm *VM) {
		y, x := scaled(vm.popInt(), 2), scaled(vm.popInt(), 2)
		vm.push(num.Int(vm.host.GetPixel(x, y)))
	})
	add("getpix4", func(vm *VM) {
		y, x := scaled(vm.popInt(), 4), scaled(vm.popInt(), 4)
		vm.push(num.Int(vm.host.GetPixel(x, y)))
	})
	add("line", func(vm *VM) {
		y2, x2, y1, x1 := vm.popInt(), vm.popInt(), vm.popInt(), vm.popInt()
		vm.host.Line(0, x1, y1, x2, y2, vm.color)
	})
	add("rect", func(vm *VM) {
		h, w, y, x := vm.popInt(), vm.popInt(), vm.popInt(), vm.popInt()
		vm.host.Rect(0, x, y, w, h, vm.color)
	})
	add("fillrect", func(vm *VM) {
		h, w, y, x := vm.popInt(), vm.popInt(), vm.popInt(), vm.popInt()
		vm.host.FillRect(0, x, y, w, h, vm.color, vm.color)
	})
	add("circle", func(vm *VM) {
		r, y, x := vm.popInt(), vm.popInt(), vm.popInt()
		vm.host.Circle(0, x, y, r, vm.color)
	})
	add("col", func(vm *VM) { vm.color = vm.popInt() })
	add("getcol", func(vm *VM) { vm.push(num.Int(vm.color)) })
	add("bg", func(vm *VM) { vm.bg = vm.popInt() })
	add("cls", func(vm *VM) { vm.host.Clear(vm.bg) })
	add("show", func(vm *VM) {
		vm.haltif(vm.flush())
		vm.haltif(vm.host.Show())
	})

	add("key", func(vm *VM) {
		vm.haltif(vm.flush())
		for {
			if key := vm.host.PollKey(); key != -1 {
				vm.push(num.Int(key))
				return
			}
			if err := vm.ctx.Err(); err != nil {
				vm.halt(err)
			}
			vm.host.Sleep(keyPollInterval)
		}
	})
	add("lastkey", func(vm *VM) { vm.push(num.Int(vm.host.LastKey())) })
	add("ticks", func(vm *VM) { vm.push(num.Int(vm.host.Ticks())) })
	add("sleep", func(vm *VM) { vm.host.Sleep(time.Duration(vm.popInt()) * time.Millisecond) })
	add("random", func(vm *VM) { vm.push(num.Int(vm.host.Random(vm.popInt()))) })

	return ops
}
