// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ACTIVE_ATTRIBUTES             = 0x8b89
	ACTIVE_ATTRIBUTE_MAX_LENGTH   = 0x8b8a
	ACTIVE_UNIFORMS               = 0x8b86
	ACTIVE_UNIFORM_MAX_LENGTH     = 0x8b87
	ARRAY_BUFFER                  = 0x8892
	ATTACHED_SHADERS              = 0x8b85
	BLEND                         = 0xbe2
	CLAMP_TO_EDGE                 = 0x812f
	COLOR_BUFFER_BIT              = 0x4000
	COMPILE_STATUS                = 0x8b81
	DEBUG_OUTPUT                  = 0x92e0
	DEBUG_OUTPUT_SYNCHRONOUS      = 0x8242
	DEBUG_SEVERITY_NOTIFICATION   = 0x826b
	DELETE_STATUS                 = 0x8b80
	DEPTH_BUFFER_BIT              = 0x100
	DEPTH_TEST                    = 0xb71
	DONT_CARE                     = 0x1100
	DYNAMIC_DRAW                  = 0x88e8
	ELEMENT_ARRAY_BUFFER          = 0x8893
	EXTENSIONS                    = 0x1f03
	FALSE                         = 0
	FLOAT                         = 0x1406
	FLOAT_MAT4                    = 0x8b5c
	FLOAT_VEC2                    = 0x8b50
	FLOAT_VEC3                    = 0x8b51
	FLOAT_VEC4                    = 0x8b52
	FRAGMENT_SHADER               = 0x8b30
	INFO_LOG_LENGTH               = 0x8b84
	INT                           = 0x1404
	INVALID_ENUM                  = 0x500
	INVALID_FRAMEBUFFER_OPERATION = 0x506
	INVALID_OPERATION             = 0x502
	INVALID_VALUE                 = 0x501
	LINEAR                        = 0x2601
	LINK_STATUS                   = 0x8b82
	MAX_VERTEX_ATTRIBS            = 0x8869
	NEAREST                       = 0x2600
	NO_ERROR                      = 0x0
	NUM_PROGRAM_BINARY_FORMATS    = 0x87fe
	OUT_OF_MEMORY                 = 0x505
	PROGRAM_BINARY_LENGTH         = 0x8741
	RENDERER                      = 0x1f01
	RGB                           = 0x1907
	RGBA                          = 0x1908
	SHADER_TYPE                   = 0x8b4f
	STATIC_DRAW                   = 0x88e4
	TEXTURE0                      = 0x84c0
	TEXTURE_2D                    = 0xde1
	TEXTURE_MAG_FILTER            = 0x2800
	TEXTURE_MIN_FILTER            = 0x2801
	TEXTURE_WRAP_S                = 0x2802
	TEXTURE_WRAP_T                = 0x2803
	TRIANGLES                     = 0x4
	TRIANGLE_STRIP                = 0x5
	TRUE                          = 1
	UNPACK_ALIGNMENT              = 0xcf5
	UNSIGNED_BYTE                 = 0x1401
	UNSIGNED_INT                  = 0x1405
	UNSIGNED_SHORT                = 0x1403
	VALIDATE_STATUS               = 0x8b83
	VENDOR                        = 0x1f00
	VERSION                       = 0x1f02
	VERTEX_SHADER                 = 0x8b31
)
