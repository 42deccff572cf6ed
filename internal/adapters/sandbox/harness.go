package sandbox

// harness is the Python program run inside the isolated interpreter. It
// reads one JSON request from stdin, executes the candidate function under
// restricted builtins and a guarded __import__, and writes one JSON
// response to stdout: {"ok": value} or {"err": "message"}.
//
// Results that are not JSON-serializable are reported via repr() so the
// parent always receives a decodable response.
const harness = `
import sys, json, builtins, types


def main():
    payload = json.load(sys.stdin)
    src = payload["source"]
    name = payload["function"]
    args = payload.get("args") or []
    kwargs = payload.get("kwargs") or {}
    allow = tuple(payload.get("allow") or ())

    safe_builtins = {
        "len": len,
        "range": range,
        "min": min,
        "max": max,
        "sum": sum,
        "abs": abs,
        "round": round,
        "sorted": sorted,
        "reversed": reversed,
        "isinstance": isinstance,
        "print": print,
        "enumerate": enumerate,
        "zip": zip,
        "all": all,
        "any": any,
        "map": map,
        "filter": filter,
        "dict": dict,
        "list": list,
        "set": set,
        "tuple": tuple,
        "float": float,
        "int": int,
        "str": str,
        "bool": bool,
        "ValueError": ValueError,
        "TypeError": TypeError,
        "KeyError": KeyError,
        "IndexError": IndexError,
        "Exception": Exception,
        "__build_class__": builtins.__build_class__,
        "__name__": "__sandbox__",
    }

    real_import = builtins.__import__

    def guarded_import(name, globals=None, locals=None, fromlist=(), level=0):
        root = name.split(".")[0]
        if root not in allow:
            raise RuntimeError("Disallowed import: " + root)
        return real_import(name, globals, locals, fromlist, level)

    safe_builtins["__import__"] = guarded_import

    g = {"__builtins__": safe_builtins, "__name__": "__sandbox__"}
    l = {}
    code = compile(src, "<evolux>", "exec")
    exec(code, g, l)
    fn = l.get(name) or g.get(name)
    if not isinstance(fn, types.FunctionType):
        raise RuntimeError("function not compiled")
    result = fn(*args, **kwargs)
    try:
        out = json.dumps({"ok": result})
    except (TypeError, ValueError):
        out = json.dumps({"ok": repr(result)})
    sys.stdout.write(out)


try:
    main()
except BaseException as e:
    sys.stdout.write(json.dumps({"err": repr(e)}))
`
