package reader

// A small diorama: a grass platform over a dirt layer with a couple of
// trees and a stone block. Only flat colors are used so it renders
// without any asset files.
const defaultScene = `
camera_eye 0 1.5 5
camera_look 0 0 0
camera_up 0 1 0

light_pos 10 10 10
light_color 255 255 255
light_intensity 1

background 135 206 235

newmtl grass
Kd 95 159 53
Ns 50
albedo 0.9 0.1

newmtl dirt
Kd 134 96 67
Ns 30
albedo 0.8 0.2

newmtl wood
Kd 102 81 49
Ns 10
albedo 0.9 0.1

newmtl leaves
Kd 60 120 40
Ns 5
albedo 0.9 0.05

newmtl stone
Kd 125 125 125
Ns 80
albedo 0.7 0.3

# dirt layer
usemtl dirt
box -2 -1 -2 2 -0.5 2

# grass top
usemtl grass
box -2 -0.5 -2 2 -0.4 2

# tree one
usemtl wood
cube -1.5 -0.4 -1.5 0.3
cube -1.5 -0.1 -1.5 0.3
cube -1.5 0.2 -1.5 0.3
usemtl leaves
box -1.95 0.5 -1.95 -0.75 0.9 -0.75
box -1.65 0.9 -1.65 -1.05 1.2 -1.05

# tree two
usemtl wood
cube 1.1 -0.4 -0.9 0.3
cube 1.1 -0.1 -0.9 0.3
usemtl leaves
box 0.75 0.2 -1.25 1.75 0.6 -0.25

# stone block and steps
usemtl stone
cube 0.2 -0.4 0.6 0.5
cube -0.8 -0.4 1.0 0.25
cube -0.55 -0.4 1.0 0.25
cube -0.55 -0.15 1.0 0.25
`
