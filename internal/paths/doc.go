// Provides platform-appropriate paths for xbuild.
//
// All paths follow XDG conventions on Linux and platform-native conventions
// on macOS and Windows. The program name "xbuild" is used as the subdirectory
// under each base path.
package paths
